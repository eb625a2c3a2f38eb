package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"property-backend/models"
	"property-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChatService relays guest messages to the external concierge webhook. Messages
// are ephemeral: nothing is persisted, the webhook response is the reply.
type ChatService struct {
	DB         *gorm.DB
	WebhookURL string
	Client     *http.Client
}

func NewChatService(db *gorm.DB, webhookURL string) *ChatService {
	return &ChatService{
		DB:         db,
		WebhookURL: webhookURL,
		Client:     &http.Client{Timeout: 30 * time.Second},
	}
}

type ChatMessage struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
}

type chatWebhookPayload struct {
	Guest   map[string]interface{} `json:"guest"`
	Booking map[string]interface{} `json:"booking"`
	Unit    map[string]interface{} `json:"unit"`
	Message ChatMessage            `json:"message"`
}

// SendMessage posts the guest's message plus stay context to the webhook. The
// active booking is picked by priority: checked_in first, then the closest
// upcoming confirmed booking.
func (s *ChatService) SendMessage(guest *models.Guest, content, msgType string) (ChatMessage, error) {
	if content == "" {
		return ChatMessage{}, fmt.Errorf("empty message content")
	}
	if msgType == "" {
		msgType = "text"
	}

	booking := s.activeBookingForGuest(guest.ID)

	message := ChatMessage{
		ID:        uuid.NewString(),
		Content:   content,
		Type:      msgType,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	payload := chatWebhookPayload{
		Guest: map[string]interface{}{
			"id":    guest.ID,
			"name":  guest.FullName,
			"email": guest.Email,
			"phone": guest.Phone,
		},
		Message: message,
	}
	if booking != nil {
		payload.Booking = map[string]interface{}{
			"id":             booking.ID,
			"status":         booking.Status,
			"check_in_date":  utils.DateString(booking.CheckInDate),
			"check_out_date": utils.DateString(booking.CheckOutDate),
			"guests_count":   booking.GuestsCount,
		}
		payload.Unit = map[string]interface{}{
			"name": booking.Unit.Name,
		}
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return ChatMessage{}, fmt.Errorf("cannot marshal payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.WebhookURL, bytes.NewReader(b))
	if err != nil {
		return ChatMessage{}, fmt.Errorf("cannot build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return ChatMessage{}, fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ChatMessage{}, fmt.Errorf("webhook HTTP error %d: %s", resp.StatusCode, string(body))
	}

	return message, nil
}

func (s *ChatService) activeBookingForGuest(guestID uint) *models.Booking {
	var checkedIn models.Booking
	err := s.DB.Preload("Unit").
		Where("guest_id = ? AND status = ?", guestID, models.BookingStatusCheckedIn).
		First(&checkedIn).Error
	if err == nil {
		return &checkedIn
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	var upcoming models.Booking
	err = s.DB.Preload("Unit").
		Where("guest_id = ? AND status = ? AND check_in_date >= ?", guestID, models.BookingStatusConfirmed, today).
		Order("check_in_date ASC").
		First(&upcoming).Error
	if err == nil {
		return &upcoming
	}
	return nil
}
