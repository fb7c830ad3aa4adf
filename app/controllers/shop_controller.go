package controllers

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/brewlogic/BrewLogic/app/models"
	"github.com/brewlogic/BrewLogic/app/repository"
	"github.com/brewlogic/BrewLogic/internal/pkg/apperror"
	"github.com/brewlogic/BrewLogic/internal/pkg/checkout"
	"github.com/brewlogic/BrewLogic/internal/pkg/upload"
)

// maxImageUpload bounds admin image uploads such as the QRIS code.
const maxImageUpload = 5 << 20

// Quoter prices a subtotal with a voucher code.
type Quoter interface {
	Quote(subtotal int64, code string) (checkout.Quote, error)
}

// Uploader stores a file and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, bucket, key string, data []byte, contentType string) (string, error)
}

// ShopController serves packages, vouchers and manual payment details.
type ShopController struct {
	repos    *repository.Repositories
	quoter   Quoter
	uploads  Uploader
	bucket   string
	validate *validator.Validate
	now      func() time.Time
}

func NewShopController(repos *repository.Repositories, quoter Quoter, uploads Uploader, bucket string) *ShopController {
	return &ShopController{repos: repos, quoter: quoter, uploads: uploads, bucket: bucket, validate: validator.New(), now: time.Now}
}

type productRequest struct {
	ID           string   `json:"id" validate:"required,max=64"`
	Name         string   `json:"name" validate:"required,max=150"`
	Price        int64    `json:"price" validate:"gte=0"`
	Duration     string   `json:"duration" validate:"max=50"`
	Description  string   `json:"description"`
	MonthlyPrice *int64   `json:"monthly_price" validate:"omitempty,gte=0"`
	SavingsText  string   `json:"savings_text" validate:"max=150"`
	PromoText    string   `json:"promo_text" validate:"max=150"`
	IsBestSeller bool     `json:"is_best_seller"`
	Features     []string `json:"features" validate:"max=30,dive,max=200"`
	SortOrder    int      `json:"sort_order" validate:"gte=0"`
}

type voucherRequest struct {
	Code          string `json:"code" validate:"required,max=50"`
	DiscountType  string `json:"discount_type" validate:"required,oneof=percentage fixed"`
	DiscountValue int64  `json:"discount_value" validate:"gt=0"`
	IsActive      *bool  `json:"is_active"`
}

type redeemRequest struct {
	Code     string `json:"code"`
	Subtotal int64  `json:"subtotal"`
}

type bankAccountRequest struct {
	BankName      string `json:"bank_name" validate:"required,max=100"`
	AccountNumber string `json:"account_number" validate:"required,max=50"`
	AccountHolder string `json:"account_holder" validate:"required,max=150"`
}

// HandleListProducts serves GET /api/products.
func (sc *ShopController) HandleListProducts(c *fiber.Ctx) error {
	products, err := sc.repos.Product.List()
	if err != nil {
		return respondError(c, apperror.External("datastore", err))
	}
	return c.JSON(products)
}

// HandleSaveProduct serves POST /api/admin/products (create or replace).
func (sc *ShopController) HandleSaveProduct(c *fiber.Ctx) error {
	var req productRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	req.ID = strings.TrimSpace(req.ID)
	if err := sc.validate.Struct(req); err != nil {
		return respondError(c, apperror.FromValidator(err))
	}
	p := &models.Product{
		ID:           req.ID,
		Name:         req.Name,
		Price:        req.Price,
		Duration:     req.Duration,
		Description:  req.Description,
		MonthlyPrice: req.MonthlyPrice,
		SavingsText:  req.SavingsText,
		PromoText:    req.PromoText,
		IsBestSeller: req.IsBestSeller,
		Features:     datatypes.JSONSlice[string](req.Features),
		SortOrder:    req.SortOrder,
	}
	if err := sc.repos.Product.Save(p); err != nil {
		return respondError(c, apperror.External("datastore", err))
	}
	return c.JSON(p)
}

func (sc *ShopController) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := sc.repos.Product.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// HandleMoveProduct serves POST /api/admin/products/:id/move/:direction
// with direction "up" or "down".
func (sc *ShopController) HandleMoveProduct(c *fiber.Ctx) error {
	dir := 0
	switch c.Params("direction") {
	case "up":
		dir = -1
	case "down":
		dir = 1
	default:
		return respondError(c, apperror.Invalid("direction", "must be up or down"))
	}
	if err := sc.repos.Product.Move(c.Params("id"), dir); err != nil {
		return respondError(c, err)
	}
	return sc.HandleListProducts(c)
}

// HandleRedeemVoucher serves POST /api/vouchers/redeem.
func (sc *ShopController) HandleRedeemVoucher(c *fiber.Ctx) error {
	var req redeemRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	if strings.TrimSpace(req.Code) == "" {
		return respondError(c, apperror.Invalid("code", "Kode voucher wajib diisi"))
	}
	if req.Subtotal < 0 {
		return respondError(c, apperror.Invalid("subtotal", "must not be negative"))
	}
	q, err := sc.quoter.Quote(req.Subtotal, req.Code)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "quote": q})
}

func (sc *ShopController) HandleListVouchers(c *fiber.Ctx) error {
	vouchers, err := sc.repos.Voucher.List()
	if err != nil {
		return respondError(c, apperror.External("datastore", err))
	}
	return c.JSON(vouchers)
}

func (sc *ShopController) HandleCreateVoucher(c *fiber.Ctx) error {
	var req voucherRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	if err := sc.validate.Struct(req); err != nil {
		return respondError(c, apperror.FromValidator(err))
	}
	if req.DiscountType == models.DiscountPercentage && req.DiscountValue > 100 {
		return respondError(c, apperror.Invalid("discount_value", "percentage must not exceed 100"))
	}
	v := &models.Voucher{
		Code:          checkout.NormalizeVoucherCode(req.Code),
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		IsActive:      req.IsActive == nil || *req.IsActive,
	}
	if err := sc.repos.Voucher.Create(v); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return respondError(c, apperror.Invalid("code", "Kode voucher sudah ada"))
		}
		return respondError(c, apperror.External("datastore", err))
	}
	return c.Status(fiber.StatusCreated).JSON(v)
}

func (sc *ShopController) HandleDeleteVoucher(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := sc.repos.Voucher.Delete(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// HandlePaymentInfo serves GET /api/payment-info.
func (sc *ShopController) HandlePaymentInfo(c *fiber.Ctx) error {
	accounts, err := sc.repos.BankAccount.ListActive()
	if err != nil {
		return respondError(c, apperror.External("datastore", err))
	}
	return c.JSON(fiber.Map{
		"bank_accounts": accounts,
		"qris_image":    sc.qrisURL(),
	})
}

func (sc *ShopController) qrisURL() string {
	row, err := sc.repos.SiteConfig.GetSiteConfig(models.SiteConfigQRISImage)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warnf("[Shop] qris_image fetch failed: %v", err)
		}
		return ""
	}
	var v struct {
		URL string `json:"url"`
	}
	if err := row.Decode(&v); err != nil {
		return ""
	}
	return v.URL
}

func (sc *ShopController) HandleListBankAccounts(c *fiber.Ctx) error {
	accounts, err := sc.repos.BankAccount.List()
	if err != nil {
		return respondError(c, apperror.External("datastore", err))
	}
	return c.JSON(accounts)
}

func (sc *ShopController) HandleCreateBankAccount(c *fiber.Ctx) error {
	var req bankAccountRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	if err := sc.validate.Struct(req); err != nil {
		return respondError(c, apperror.FromValidator(err))
	}
	acc := &models.BankAccount{
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		AccountHolder: req.AccountHolder,
		IsActive:      true,
	}
	if err := sc.repos.BankAccount.Create(acc); err != nil {
		return respondError(c, apperror.External("datastore", err))
	}
	return c.Status(fiber.StatusCreated).JSON(acc)
}

func (sc *ShopController) HandleDeleteBankAccount(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := sc.repos.BankAccount.Delete(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// HandleUploadQRIS serves POST /api/admin/qris (multipart field "image").
func (sc *ShopController) HandleUploadQRIS(c *fiber.Ctx) error {
	data, filename, err := readFormFile(c, "image", maxImageUpload)
	if err != nil {
		return respondError(c, err)
	}
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	mime, err := upload.ValidateImageBySniff(filename, head)
	if err != nil {
		return respondError(c, apperror.Invalid("image", err.Error()))
	}

	url, err := sc.uploads.Upload(c.UserContext(), sc.bucket, upload.QRISObjectName(sc.now()), data, mime)
	if err != nil {
		return respondError(c, apperror.External("object storage", err))
	}
	row, err := models.NewSiteConfig(models.SiteConfigQRISImage, fiber.Map{"url": url})
	if err != nil {
		return respondError(c, err)
	}
	if err := sc.repos.SiteConfig.SaveSiteConfig(row); err != nil {
		return respondError(c, apperror.External("datastore", err))
	}
	return c.JSON(fiber.Map{"success": true, "url": url})
}

// readFormFile returns the named multipart file. Files over limit are
// rejected.
func readFormFile(c *fiber.Ctx, field string, limit int64) ([]byte, string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, "", apperror.Invalid(field, "File wajib diunggah")
	}
	if fh.Size > limit {
		return nil, "", apperror.Invalid(field, "Ukuran file terlalu besar")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, "", apperror.Invalid(field, "File tidak dapat dibaca")
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, "", apperror.Invalid(field, "File tidak dapat dibaca")
	}
	return data, fh.Filename, nil
}
