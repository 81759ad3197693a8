package emailgateway

// Message письмо к отправке
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

type address struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendRequest struct {
	From    address   `json:"from"`
	To      []address `json:"to"`
	Subject string    `json:"subject"`
	HTML    string    `json:"html"`
	Text    string    `json:"text,omitempty"`
}
