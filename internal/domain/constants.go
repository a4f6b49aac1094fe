package domain

// Order Statuses. Fulfilment happens downstream of the order.placed event, so
// the storefront only ever writes pending orders.
const (
	OrderStatusPending = "pending"
)

// Payment Methods
const (
	PaymentMethodCard = "card"
	PaymentMethodCOD  = "cod"
)

// Product genders used by the catalog filter
const (
	GenderWomen = "Women"
	GenderMen   = "Men"
)

// List Exports for API
var PaymentMethods = []string{
	PaymentMethodCard,
	PaymentMethodCOD,
}
