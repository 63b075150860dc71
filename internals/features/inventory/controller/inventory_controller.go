package controller

import (
	"io"
	"log"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"edugest_backend/internals/constants"
	"edugest_backend/internals/features/inventory/dto"
	"edugest_backend/internals/features/inventory/ledger"
	"edugest_backend/internals/features/inventory/service"
	reports "edugest_backend/internals/features/reports/service"
	helper "edugest_backend/internals/helpers"
	"edugest_backend/internals/state"
)

var validate = validator.New()

// batas upload factură
const maxScanBytes = 10 << 20

type InventoryController struct {
	Ctl     *state.Controller
	Scanner *service.ScanService
}

func NewInventoryController(ctl *state.Controller, scanner *service.ScanService) *InventoryController {
	return &InventoryController{Ctl: ctl, Scanner: scanner}
}

func (h *InventoryController) book() ledger.Book {
	snap := h.Ctl.Snapshot()
	return ledger.Book{Items: snap.Inventory, Transactions: snap.Transactions}
}

// GET /api/inventory?low=true
func (h *InventoryController) List(c *fiber.Ctx) error {
	onlyLow := c.QueryBool("low", false)
	snap := h.Ctl.Snapshot()
	book := ledger.Book{Items: snap.Inventory, Transactions: snap.Transactions}

	out := dto.InventoryResponse{Items: []dto.ItemResponse{}, Currency: snap.Config.Currency, StockValue: book.StockValue()}
	for _, it := range snap.Inventory {
		if it.IsLow() {
			out.LowStock++
		} else if onlyLow {
			continue
		}
		out.Items = append(out.Items, dto.ItemResponse{FoodItem: it, IsLow: it.IsLow(), Value: it.Quantity * it.LastPrice})
	}
	sort.SliceStable(out.Items, func(i, j int) bool { return out.Items[i].Name < out.Items[j].Name })
	return helper.JsonOK(c, "ok", out)
}

// POST /api/inventory/documents
func (h *InventoryController) CreateDocument(c *fiber.Ctx) error {
	var in dto.CreateDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(in); err != nil {
		return helper.ValidationError(c, err)
	}
	res, err := h.Ctl.RecordDocument(c.UserContext(), in.ToInput())
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonCreated(c, "Document înregistrat: "+res.Ref, res)
}

// GET /api/inventory/documents
func (h *InventoryController) ListDocuments(c *fiber.Ctx) error {
	b := h.book()
	docs := b.Documents()
	if t := strings.ToUpper(strings.TrimSpace(c.Query("type"))); t != "" {
		kept := docs[:0]
		for _, d := range docs {
			if string(d.Type) == t {
				kept = append(kept, d)
			}
		}
		docs = kept
	}
	page, pg := helper.Paginate(docs, helper.ResolvePaging(c, 200))
	return helper.JsonList(c, "ok", page, &pg)
}

// GET /api/inventory/documents/:ref
func (h *InventoryController) GetDocument(c *fiber.Ctx) error {
	b := h.book()
	doc, ok := b.Document(c.Params("ref"))
	if !ok {
		return helper.JsonDomainError(c, state.ErrDocumentNotFound)
	}
	return helper.JsonOK(c, "ok", doc)
}

// DELETE /api/inventory/documents/:ref
func (h *InventoryController) ReverseDocument(c *fiber.Ctx) error {
	ref := c.Params("ref")
	n, err := h.Ctl.ReverseDocument(c.UserContext(), ref)
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonDeleted(c, "Document anulat", fiber.Map{"ref": ref, "reversed": n})
}

// DELETE /api/inventory/items/:id
func (h *InventoryController) DeleteItem(c *fiber.Ctx) error {
	if err := h.Ctl.DeleteFoodItem(c.UserContext(), c.Params("id")); err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.JsonDeleted(c, "Produs șters", fiber.Map{"id": c.Params("id")})
}

// POST /api/inventory/scan (multipart "file": jpg/png/webp/pdf) → draft NIR
func (h *InventoryController) Scan(c *fiber.Ctx) error {
	if !h.Scanner.Enabled() {
		return helper.JsonDomainError(c, service.ErrScannerDisabled)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Fișierul lipsește (câmpul file)")
	}
	if fh.Size > maxScanBytes {
		return helper.JsonError(c, fiber.StatusRequestEntityTooLarge, "Fișierul depășește 10MB")
	}

	mime := "application/pdf"
	switch constants.DetectFileTypeFromExt(fh.Filename) {
	case constants.FilePDF:
	case constants.FileImage:
		mime = fh.Header.Get("Content-Type")
		if mime == "" {
			mime = "image/jpeg"
		}
	default:
		return helper.JsonError(c, fiber.StatusBadRequest, "Format neacceptat (JPG, PNG, WEBP sau PDF)")
	}

	f, err := fh.Open()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Fișierul nu poate fi citit")
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Fișierul nu poate fi citit")
	}

	scan, err := h.Scanner.Scan(c.UserContext(), data, fh.Filename, mime)
	if err != nil {
		log.Printf("[ERROR] scan factură %s: %v", fh.Filename, err)
		return helper.JsonDomainError(c, err)
	}
	snap := h.Ctl.Snapshot()
	draft := service.DraftFromScan(scan, snap.Inventory, h.Ctl.Now())
	return helper.JsonOK(c, "Factura a fost analizată. Verificați datele înainte de salvare.", draft)
}

// GET /api/inventory/export
func (h *InventoryController) Export(c *fiber.Ctx) error {
	var (
		data []byte
		err  error
	)
	h.Ctl.View(func(s *state.AppState) { data, err = reports.Workbook(s, reports.KindInventory, "") })
	if err != nil {
		return helper.JsonDomainError(c, err)
	}
	return helper.SendXLSX(c, reports.FileName(reports.KindInventory, ""), data)
}
