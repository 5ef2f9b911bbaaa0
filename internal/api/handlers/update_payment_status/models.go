package update_payment_status

// UpdatePaymentRequest HTTP request model
type UpdatePaymentRequest struct {
	PaymentStatus string `json:"paymentStatus"` // pending | paid | unpaid
}
