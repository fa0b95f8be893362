package invoice

import (
	"fmt"
	"strings"
	"time"

	"freightline/internal/domain/shipment"
)

// Invoice is the billing view derived from a shipment. It is rendered by the
// client; this service only supplies the numbers.
type Invoice struct {
	InvoiceNumber string    `json:"invoice_number"`
	TrackingID    string    `json:"tracking_id"`
	IssuedAt      time.Time `json:"issued_at"`

	SenderName    string `json:"sender_name"`
	SenderPhone   string `json:"sender_phone"`
	ReceiverName  string `json:"receiver_name"`
	ReceiverPhone string `json:"receiver_phone"`

	PackageName     string `json:"package_name"`
	Transportation  string `json:"transportation"`
	PickupLocation  string `json:"pickup_location"`
	DeliveryAddress string `json:"delivery_address"`

	Amount float64 `json:"amount"`
	Paid   bool    `json:"paid"`
	Status string  `json:"status"`
}

// FromShipment derives the invoice for a shipment. The invoice number is the
// first ID block uppercased, which stays stable across reads.
func FromShipment(s *shipment.Shipment, now time.Time) *Invoice {
	var amount float64
	if s.Cost != nil {
		amount = *s.Cost
	}

	status := "UNPAID"
	if s.Paid {
		status = "PAID"
	}

	return &Invoice{
		InvoiceNumber: invoiceNumber(s),
		TrackingID:    s.ID.String(),
		IssuedAt:      now,

		SenderName:    s.SenderName,
		SenderPhone:   s.SenderPhone,
		ReceiverName:  s.ReceiverName,
		ReceiverPhone: s.ReceiverPhone,

		PackageName:     s.PackageName,
		Transportation:  string(s.Transportation),
		PickupLocation:  s.PickupLocation,
		DeliveryAddress: s.DeliveryAddress,

		Amount: amount,
		Paid:   s.Paid,
		Status: status,
	}
}

func invoiceNumber(s *shipment.Shipment) string {
	block := strings.SplitN(s.ID.String(), "-", 2)[0]
	return fmt.Sprintf("INV-%s", strings.ToUpper(block))
}
