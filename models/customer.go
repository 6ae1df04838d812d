package models

type Customer struct {
	CustomerID  string `json:"customerId" gorm:"primaryKey"`
	Name        string `json:"name"`
	Age         string `json:"age"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phoneNumber"`
}
