package domain

import (
	"encoding/json"
	"time"
)

// --- Catalogue input ---

// Category is a product category as supplied by the storage collaborator.
type Category struct {
	ID   string `json:"id,omitempty"`
	Slug string `json:"slug"`
	Name string `json:"name,omitempty"`
}

// Product is the raw record handed over by the storage layer. Attributes, Specifications,
// Highlights and Tags are loosely typed: a map, a JSON-encoded string, a list, or nil.
type Product struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	ShortDescription  string     `json:"shortDescription,omitempty"`
	Price             *int64     `json:"price"`
	CompareAtPrice    *int64     `json:"compareAtPrice,omitempty"`
	Stock             int        `json:"stock"`
	TrackInventory    bool       `json:"trackInventory"`
	LowStockThreshold *int       `json:"lowStockThreshold,omitempty"`
	Brand             string     `json:"brand,omitempty"`
	SKU               string     `json:"sku,omitempty"`
	Weight            string     `json:"weight,omitempty"`
	Color             string     `json:"color,omitempty"`
	Size              string     `json:"size,omitempty"`
	Material          string     `json:"material,omitempty"`
	Manufacturer      string     `json:"manufacturer,omitempty"`
	Warranty          string     `json:"warranty,omitempty"`
	ReturnPolicy      string     `json:"returnPolicy,omitempty"`
	FreeShipping      bool       `json:"freeShipping"`
	Rating            *float64   `json:"rating,omitempty"`
	ReviewCount       *int       `json:"reviewCount,omitempty"`
	Attributes        any        `json:"attributes,omitempty"`
	Specifications    any        `json:"specifications,omitempty"`
	Highlights        any        `json:"highlights,omitempty"`
	Tags              any        `json:"tags,omitempty"`
	Categories        []Category `json:"categories,omitempty"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// Review is a raw review record keyed by product.
type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	UserName  string    `json:"userName,omitempty"`
	UserEmail string    `json:"userEmail,omitempty"`
	Rating    float64   `json:"rating"`
	Comment   string    `json:"comment"`
	Images    any       `json:"images,omitempty"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"createdAt"`
}

// --- Presentation output ---

type Badge struct {
	Icon  string `json:"icon"`
	Text  string `json:"text"`
	Color string `json:"color"`
}

type FeatureBlock struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ReviewView struct {
	ID           string   `json:"id"`
	DisplayName  string   `json:"displayName"`
	Rating       float64  `json:"rating"`
	RelativeDate string   `json:"relativeDate"`
	Text         string   `json:"text"`
	Images       []string `json:"images"`
	Verified     bool     `json:"verified"`
}

// PresentationViewModel is everything the rendering collaborator needs for a product page.
type PresentationViewModel struct {
	ProductID        string         `json:"productId"`
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	ShortDescription string         `json:"shortDescription,omitempty"`
	Price            int64          `json:"price"`
	MRP              int64          `json:"mrp"`
	DiscountPercent  int            `json:"discountPercent"`
	Highlights       []string       `json:"highlights"`
	Specifications   Specifications `json:"specifications"`
	Badges           []Badge        `json:"badges"`
	Features         []FeatureBlock `json:"features"`
	Rating           float64        `json:"rating"`
	ReviewCount      int            `json:"reviewCount"`
	LowStock         bool           `json:"lowStock"`
	Reviews          []ReviewView   `json:"reviews"`
	Tags             []string       `json:"tags"`
}

// --- Checkout ---

type OrderLineItem struct {
	ProductID string `json:"productId" validate:"required"`
	Title     string `json:"title"`
	UnitPrice int64  `json:"unitPrice" validate:"gte=0"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

type ShippingOption struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Price         int64  `json:"price"`
	EstimatedDays string `json:"estimatedDays"`
}

// OrderTotals are the initial totals handed to the order-persistence collaborator.
type OrderTotals struct {
	Subtotal              int64       `json:"subtotal"`
	Shipping              int64       `json:"shipping"`
	Tax                   int64       `json:"tax"`
	PaymentFee            int64       `json:"paymentFee"`
	Total                 int64       `json:"total"`
	EstimatedDeliveryDate time.Time   `json:"estimatedDeliveryDate"`
	PaymentStatus         OrderStatus `json:"paymentStatus"`
}

// --- Rule packs ---

// RulePackDefinition is a versioned set of JsonLogic rules loaded from disk or the embedded default.
type RulePackDefinition struct {
	Version     string       `json:"version"`
	Rules       []RuleConfig `json:"rules"`
	Description string       `json:"description,omitempty"`
}

type RuleConfig struct {
	ID           string                 `json:"id"`
	Phase        string                 `json:"phase"`
	Logic        map[string]interface{} `json:"logic"`
	ErrorMessage string                 `json:"error_message,omitempty"`
}

type GuardViolation struct {
	RuleID  string `json:"ruleId"`
	Reason  string `json:"reason"`
	Context string `json:"context"`
}

type ExecutionStep struct {
	Phase   string `json:"phase"`
	RuleID  string `json:"ruleId"`
	Action  string `json:"action"`
	Message string `json:"message"`
}

// CheckoutRequest is what the client submits for a quote. ClaimedTotals are the totals the
// client displayed; the server answers with its own and a delta.
type CheckoutRequest struct {
	Items            []OrderLineItem `json:"items" validate:"required,min=1,dive"`
	ShippingOptionID string          `json:"shippingOptionId,omitempty"`
	PaymentMethod    string          `json:"paymentMethod" validate:"max=64"`
	ClaimedTotals    *OrderTotals    `json:"claimedTotals,omitempty"`
}

// CheckoutQuote is the authoritative answer to a CheckoutRequest.
type CheckoutQuote struct {
	QuoteID        string           `json:"quoteId"`
	RulesVersion   string           `json:"rulesVersion"`
	Totals         OrderTotals      `json:"totals"`
	ShippingOption *ShippingOption  `json:"shippingOption,omitempty"`
	PaymentMethod  string           `json:"paymentMethod"`
	GuardsHit      []GuardViolation `json:"guardsHit"`
	ExecutionLog   []ExecutionStep  `json:"executionLog"`
	ServerDelta    bool             `json:"serverDelta"`
	Delta          json.RawMessage  `json:"delta,omitempty"`
}
