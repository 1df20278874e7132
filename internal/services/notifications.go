package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/harentsoaR/dentlab-api/internal/jalali"
	"github.com/harentsoaR/dentlab-api/internal/models"
)

// Notifier tells patients about their orders.
type Notifier interface {
	OrderReady(order *models.Order)
}

// NotificationService sends SMS through the Textbelt API.
type NotificationService struct {
	apiKey string
	url    string
	client *http.Client
	async  bool
}

func NewNotificationService(apiKey, url string) *NotificationService {
	return &NotificationService{
		apiKey: apiKey,
		url:    url,
		client: &http.Client{Timeout: 15 * time.Second},
		async:  true,
	}
}

// OrderReady texts the patient that the order can be picked up.
func (s *NotificationService) OrderReady(order *models.Order) {
	if order.PatientPhone == "" {
		log.Printf("SMS not sent: order %s has no patient phone.", order.ID.Hex())
		return
	}

	smsBody := fmt.Sprintf("%s عزیز، سفارش %s شما آماده تحویل است.", order.PatientName, order.OrderType)
	if order.DueDate != nil {
		smsBody += " تاریخ تحویل: " + jalali.FromTime(*order.DueDate).String()
	}

	// Send in a goroutine so it doesn't block the API response
	if s.async {
		go s.send(order.PatientPhone, smsBody)
		return
	}
	s.send(order.PatientPhone, smsBody)
}

func (s *NotificationService) send(phone, message string) {
	postBody, _ := json.Marshal(map[string]string{
		"phone":   phone,
		"message": message,
		"key":     s.apiKey,
	})

	resp, err := s.client.Post(s.url, "application/json", bytes.NewBuffer(postBody))
	if err != nil {
		log.Printf("Failed to send Textbelt request for number %s: %v", phone, err)
		return
	}
	defer resp.Body.Close()

	var result struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Printf("Failed to decode Textbelt response for %s: %v", phone, err)
		return
	}
	if !result.Success {
		log.Printf("Failed to send SMS via Textbelt to %s. Reason: %s", phone, result.Error)
		return
	}
	log.Printf("Successfully sent SMS via Textbelt to %s", phone)
}
