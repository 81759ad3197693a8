package smsgateway

// Message SMS к отправке
type Message struct {
	From string
	To   string
	Text string
	// APIKey ключ центра; пустой - используется ключ клиента по умолчанию
	APIKey string
}

type sendRequest struct {
	From string   `json:"from"`
	To   []string `json:"to"`
	Text string   `json:"text"`
}
