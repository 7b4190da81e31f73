package entity

import "time"

// Client representa un cliente de una empresa (destinatario de órdenes y facturas).
type Client struct {
	ID            string
	CompanyID     string
	Name          string
	Email         string
	Phone         string
	Address       string
	ContactPerson string
	CreatedAt     time.Time
}
