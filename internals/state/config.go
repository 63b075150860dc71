package state

import (
	"context"
	"strings"

	"edugest_backend/internals/features/kindergarten/model"
)

// UpdateConfig mengganti config; Groups nil berarti daftar grup dipertahankan.
func (c *Controller) UpdateConfig(ctx context.Context, cfg model.AppConfig) (model.AppConfig, error) {
	var out model.AppConfig
	err := c.mutate(ctx, func(s *AppState) ([]string, error) {
		cfg.InstitutionName = strings.TrimSpace(cfg.InstitutionName)
		if cfg.InstitutionName == "" {
			return nil, invalid("institutionName", "obligatoriu")
		}
		if cfg.FoodCostPerDay < 0 {
			return nil, invalid("foodCostPerDay", "nu poate fi negativ")
		}
		if strings.TrimSpace(cfg.Currency) == "" {
			cfg.Currency = s.Config.Currency
		}
		if cfg.Groups == nil {
			cfg.Groups = append([]string{}, s.Config.Groups...)
		} else {
			seen := map[string]bool{}
			groups := make([]string, 0, len(cfg.Groups))
			for _, g := range cfg.Groups {
				g = strings.TrimSpace(g)
				if g == "" || seen[g] {
					continue
				}
				seen[g] = true
				groups = append(groups, g)
			}
			cfg.Groups = groups
		}
		s.Config = cfg
		out = cfg
		return []string{KeyConfig}, nil
	})
	return out, err
}

func (c *Controller) AddGroup(ctx context.Context, name string) error {
	return c.mutate(ctx, func(s *AppState) ([]string, error) {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, invalid("name", "obligatoriu")
		}
		if s.Config.HasGroup(name) {
			return nil, ErrGroupExists
		}
		s.Config.Groups = append(s.Config.Groups, name)
		return []string{KeyConfig}, nil
	})
}

// RenameGroup juga me-relabel student yang ada di grup lama.
func (c *Controller) RenameGroup(ctx context.Context, oldName, newName string) (int, error) {
	relabeled := 0
	err := c.mutate(ctx, func(s *AppState) ([]string, error) {
		newName = strings.TrimSpace(newName)
		if newName == "" {
			return nil, invalid("newName", "obligatoriu")
		}
		if !s.Config.HasGroup(oldName) {
			return nil, ErrGroupNotFound
		}
		if oldName == newName {
			return nil, nil
		}
		if s.Config.HasGroup(newName) {
			return nil, ErrGroupExists
		}
		for i, g := range s.Config.Groups {
			if g == oldName {
				s.Config.Groups[i] = newName
			}
		}
		for i := range s.Students {
			if s.Students[i].Group == oldName {
				s.Students[i].Group = newName
				relabeled++
			}
		}
		keys := []string{KeyConfig}
		if relabeled > 0 {
			keys = append(keys, KeyStudents)
		}
		return keys, nil
	})
	return relabeled, err
}

// DeleteGroup hanya menghapus dari config; student tetap memegang label lama.
func (c *Controller) DeleteGroup(ctx context.Context, name string) error {
	return c.mutate(ctx, func(s *AppState) ([]string, error) {
		if !s.Config.HasGroup(name) {
			return nil, ErrGroupNotFound
		}
		kept := make([]string, 0, len(s.Config.Groups))
		for _, g := range s.Config.Groups {
			if g != name {
				kept = append(kept, g)
			}
		}
		s.Config.Groups = kept
		return []string{KeyConfig}, nil
	})
}
