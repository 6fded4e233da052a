package get_carriers

// CarriersQuery query параметры запроса
type CarriersQuery struct {
	City string `schema:"city"`
}

// CarriersResponse HTTP response model
type CarriersResponse struct {
	City     string   `json:"city"`
	Carriers []string `json:"carriers"`
}
