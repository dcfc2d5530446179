package responses

const StatusOK = "ok"

type CreateSubscriberRequestResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	File    string `json:"file"`
}
