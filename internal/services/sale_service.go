package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"backoffice/internal/discount"
	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
	"backoffice/internal/utils"

	"github.com/google/uuid"
)

// SaleInput creates a sale, or on update changes its header and the
// quantities of the listed products. Products not yet on the sale are added;
// items that are not listed stay as they are.
type SaleInput struct {
	SaleNumber string      `json:"saleNumber" validate:"max=64"`
	SaleDate   time.Time   `json:"saleDate"`
	CustomerID int64       `json:"customerId" validate:"required,gt=0"`
	Branch     string      `json:"branch" validate:"required,max=100"`
	Items      []LineInput `json:"items" validate:"required,min=1,dive"`
}

type SaleService struct {
	Sales     SaleStore
	Products  ProductStore
	Users     UserStore
	RequestID string
}

func (s SaleService) List(ctx context.Context, p domain.ListParams) (domain.Page[models.Sale], error) {
	p = p.Normalize()
	sales, total, err := saleStore(s.Sales).List(ctx, p)
	if err != nil {
		return domain.Page[models.Sale]{}, err
	}
	return domain.NewPage(sales, total, p), nil
}

func (s SaleService) Get(ctx context.Context, id int64) (models.Sale, error) {
	return saleStore(s.Sales).GetByID(ctx, id)
}

// ListItems filters, orders and pages the items of one sale.
func (s SaleService) ListItems(ctx context.Context, id int64, p domain.ListParams) (domain.Page[models.SaleItem], error) {
	sale, err := saleStore(s.Sales).GetByID(ctx, id)
	if err != nil {
		return domain.Page[models.SaleItem]{}, err
	}
	items := models.SaleItemFields.Apply(sale.Items, p.Order, p.Filters)
	return domain.Paginate(items, p), nil
}

func (s SaleService) Create(ctx context.Context, in SaleInput) (models.Sale, error) {
	in = normalizeSaleInput(in)
	if err := validateStruct(in); err != nil {
		return models.Sale{}, err
	}
	name, err := s.customerName(ctx, in.CustomerID)
	if err != nil {
		return models.Sale{}, err
	}

	now := utils.NowUTC()
	sale := models.Sale{
		SaleNumber:   in.SaleNumber,
		SaleDate:     dateOr(in.SaleDate, now),
		CustomerID:   in.CustomerID,
		CustomerName: name,
		Branch:       in.Branch,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if sale.SaleNumber == "" {
		sale.SaleNumber = strings.ToUpper(uuid.NewString())
	}
	if err := s.applyLines(ctx, &sale, in.Items); err != nil {
		return models.Sale{}, err
	}
	sale.Recalculate()

	sale, err = saleStore(s.Sales).Create(ctx, sale)
	if err != nil {
		return models.Sale{}, err
	}
	utils.LogEvent(s.RequestID, "sale", "created", fmt.Sprintf("sale_id=%d sale_number=%s total=%s",
		sale.ID, sale.SaleNumber, utils.FormatMoney(sale.TotalAmount)))
	return sale, nil
}

func (s SaleService) Update(ctx context.Context, id int64, in SaleInput) (models.Sale, error) {
	in = normalizeSaleInput(in)
	if err := validateStruct(in); err != nil {
		return models.Sale{}, err
	}
	store := saleStore(s.Sales)
	sale, err := store.GetByID(ctx, id)
	if err != nil {
		return models.Sale{}, err
	}
	if sale.IsCancelled {
		return models.Sale{}, domain.ConflictError{Resource: "sale", Msg: "sale is cancelled"}
	}

	if in.CustomerID != sale.CustomerID {
		if sale.CustomerName, err = s.customerName(ctx, in.CustomerID); err != nil {
			return models.Sale{}, err
		}
		sale.CustomerID = in.CustomerID
	}
	if in.SaleNumber != "" {
		sale.SaleNumber = in.SaleNumber
	}
	sale.SaleDate = dateOr(in.SaleDate, sale.SaleDate)
	sale.Branch = in.Branch
	if err := s.applyLines(ctx, &sale, in.Items); err != nil {
		return models.Sale{}, err
	}
	sale.Recalculate()
	sale.UpdatedAt = utils.NowUTC()

	sale, err = store.Save(ctx, sale)
	if err != nil {
		return models.Sale{}, err
	}
	utils.LogEvent(s.RequestID, "sale", "modified", fmt.Sprintf("sale_id=%d total=%s",
		sale.ID, utils.FormatMoney(sale.TotalAmount)))
	return sale, nil
}

// Cancel marks the whole sale as cancelled. Item amounts are left untouched.
func (s SaleService) Cancel(ctx context.Context, id int64) (models.Sale, error) {
	store := saleStore(s.Sales)
	sale, err := store.GetByID(ctx, id)
	if err != nil {
		return models.Sale{}, err
	}
	if sale.IsCancelled {
		return models.Sale{}, domain.ConflictError{Resource: "sale", Msg: "sale is already cancelled"}
	}
	sale.IsCancelled = true
	sale.UpdatedAt = utils.NowUTC()

	sale, err = store.Save(ctx, sale)
	if err != nil {
		return models.Sale{}, err
	}
	utils.LogEvent(s.RequestID, "sale", "cancelled", fmt.Sprintf("sale_id=%d", sale.ID))
	return sale, nil
}

// CancelItem cancels one item and recomputes the sale total from the
// remaining items. The discount engine is not consulted.
func (s SaleService) CancelItem(ctx context.Context, saleID, itemID int64) (models.Sale, error) {
	store := saleStore(s.Sales)
	sale, err := store.GetByID(ctx, saleID)
	if err != nil {
		return models.Sale{}, err
	}
	if sale.IsCancelled {
		return models.Sale{}, domain.ConflictError{Resource: "sale", Msg: "sale is cancelled"}
	}
	item := sale.Item(itemID)
	if item == nil {
		return models.Sale{}, domain.NotFoundError{Resource: "sale item", ID: itemID}
	}
	if item.IsCancelled {
		return models.Sale{}, domain.ConflictError{Resource: "sale item", Msg: "item is already cancelled"}
	}
	item.IsCancelled = true
	sale.Recalculate()
	sale.UpdatedAt = utils.NowUTC()

	sale, err = store.Save(ctx, sale)
	if err != nil {
		return models.Sale{}, err
	}
	utils.LogEvent(s.RequestID, "sale", "item_cancelled", fmt.Sprintf("sale_id=%d item_id=%d total=%s",
		sale.ID, itemID, utils.FormatMoney(sale.TotalAmount)))
	return sale, nil
}

// applyLines reprices the active item of every listed product, or appends a
// new item priced from the catalog.
func (s SaleService) applyLines(ctx context.Context, sale *models.Sale, in []LineInput) error {
	merged := mergeLines(in)
	products, err := loadProducts(ctx, productStore(s.Products), merged)
	if err != nil {
		return err
	}

	for _, l := range merged {
		if item := activeItem(sale, l.ProductID); item != nil {
			priced, err := reprice(item.LineItem, l.Quantity)
			if err != nil {
				return err
			}
			item.LineItem = priced
			continue
		}
		product := products[l.ProductID]
		priced, err := reprice(discount.LineItem{UnitPrice: product.Price}, l.Quantity)
		if err != nil {
			return err
		}
		sale.Items = append(sale.Items, models.SaleItem{
			SaleID:       sale.ID,
			ProductID:    product.ID,
			ProductTitle: product.Title,
			LineItem:     priced,
		})
	}
	return nil
}

func activeItem(sale *models.Sale, productID int64) *models.SaleItem {
	for i := range sale.Items {
		if sale.Items[i].ProductID == productID && !sale.Items[i].IsCancelled {
			return &sale.Items[i]
		}
	}
	return nil
}

func (s SaleService) customerName(ctx context.Context, customerID int64) (string, error) {
	u, err := userStore(s.Users).GetByID(ctx, customerID)
	if err != nil {
		if domain.IsNotFound(err) {
			return "", domain.ValidationError{Field: "CustomerID", Msg: fmt.Sprintf("customer %d does not exist", customerID), Err: err}
		}
		return "", err
	}
	name := utils.NormalizeSpace(u.Name.Firstname + " " + u.Name.Lastname)
	return utils.Safe(name, u.Username), nil
}

func normalizeSaleInput(in SaleInput) SaleInput {
	in.SaleNumber = strings.TrimSpace(in.SaleNumber)
	in.Branch = utils.NormalizeSpace(in.Branch)
	return in
}
