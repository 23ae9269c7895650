package domain

type ItemType string

const (
	ItemTypePackage ItemType = "package"
	ItemTypeService ItemType = "service"
	ItemTypeAddOn   ItemType = "addon"
)

type Billing string

const (
	BillingMonthly  Billing = "monthly"
	BillingAnnually Billing = "annually"
)

func (b Billing) Valid() bool {
	return b == BillingMonthly || b == BillingAnnually
}

// Suffix is the price suffix shown next to recurring items.
func (b Billing) Suffix() string {
	switch b {
	case BillingAnnually:
		return "/year"
	case BillingMonthly:
		return "/month"
	default:
		return ""
	}
}

// CartItem is a single line of the cart. ID is unique within a cart and is
// composed from the catalog id and the billing period or tier.
type CartItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Quantity    int      `json:"quantity"`
	Type        ItemType `json:"type"`
	Billing     Billing  `json:"billing,omitempty"`
	Description string   `json:"description,omitempty"`
}

// Subtotal returns price * quantity for the line.
func (i CartItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}
