package domain

import "time"

type User struct {
	ID          int64     `json:"id"`
	DisplayName string    `json:"display_name"`
	Balance     int       `json:"balance"`
	CreatedAt   time.Time `json:"created_at"`
}

type RegisterUserInput struct {
	ID          int64
	DisplayName string
}

type Stats struct {
	Users                int `json:"users"`
	ActiveBookings       int `json:"active_bookings"`
	FutureBookings       int `json:"future_bookings"`
	CancelledBookings    int `json:"cancelled_bookings"`
	CreditsInCirculation int `json:"credits_in_circulation"`
}
