package httpserver

type createProductRequest struct {
	SKU   string `json:"sku"`
	Name  string `json:"name"`
	Stock *int64 `json:"stock"`
}

type replaceProductRequest struct {
	SKU   string `json:"sku"`
	Name  string `json:"name"`
	Stock *int64 `json:"stock"`
}

type setStockRequest struct {
	Stock *int64 `json:"stock"`
}

type adjustStockRequest struct {
	Delta *int64 `json:"delta"`
}

type stockView struct {
	ID    uint   `json:"id"`
	SKU   string `json:"sku"`
	Stock int64  `json:"stock"`
}
