package dto

type CartRequest struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

type ClaimResponse struct {
	Level    int     `json:"level"`
	Cashback float64 `json:"cashback"`
	Page     any     `json:"page"`
}
