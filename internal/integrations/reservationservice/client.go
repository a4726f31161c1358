package reservationservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент авторитетного сервиса резервирования.
// Сервис единолично владеет reserved_count слотов: атомарная проверка
// вместимости и инкремент выполняются только на его стороне.
type Client struct {
	baseURL string
	// httpClient для чтения слотов (короткий таймаут)
	httpClient *http.Client
	// reserveClient для запроса резервирования (длинный таймаут:
	// обрыв по таймауту здесь означает неопределенный исход)
	reserveClient *http.Client
	log           Logger
}

// NewClient создает новый экземпляр клиента сервиса резервирования
func NewClient(baseURL string, timeout, reserveTimeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		reserveClient: &http.Client{
			Timeout: reserveTimeout,
		},
		log: log,
	}
}

// GetAvailableSlots получает слоты услуги на указанную дату.
// Пустой список считается валидным ответом ("на эту дату слотов нет"),
// он не является ошибкой
func (c *Client) GetAvailableSlots(ctx context.Context, serviceID int64, date time.Time) ([]Slot, error) {
	url := fmt.Sprintf("%s/api/v1/appointments/available_slots/%d/%s",
		c.baseURL, serviceID, date.Format("2006-01-02"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// Продолжаем обработку
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrSlotNotFound
	case resp.StatusCode >= http.StatusInternalServerError:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status code %d: %s", ErrUnavailable, resp.StatusCode, string(body))
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var slots []Slot
	if err := json.NewDecoder(resp.Body).Decode(&slots); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return slots, nil
}

// Reserve отправляет единственный запрос резервирования слота для гражданина.
// Идемпотентный ключ черновика передается заголовком, чтобы повтор после
// сбоя не создал второе резервирование.
//
// Возвращаемые ошибки:
//   - ErrSlotFull: вместимость исчерпана (авторитетный отказ)
//   - ErrTimeout: исход неопределен, перед повтором нужна проверка существования
//   - ErrUnavailable: сервис недоступен, резервирование точно не создано
func (c *Client) Reserve(ctx context.Context, citizenNIC string, slotID int64, idempotencyKey string) (*ReservedUser, error) {
	url := fmt.Sprintf("%s/api/v1/appointments/reserved_user", c.baseURL)

	body, err := json.Marshal(reserveRequest{
		SlotID:     slotID,
		CitizenNIC: citizenNIC,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", idempotencyKey)

	resp, err := c.reserveClient.Do(req)
	if err != nil {
		if isTimeoutError(err) {
			return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		// Продолжаем обработку
	case resp.StatusCode == http.StatusConflict:
		return nil, ErrSlotFull
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrSlotNotFound
	case resp.StatusCode >= http.StatusInternalServerError:
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status code %d: %s", ErrUnavailable, resp.StatusCode, string(respBody))
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	var reserved ReservedUser
	if err := json.NewDecoder(resp.Body).Decode(&reserved); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &reserved, nil
}

// GetReservedSlots получает слоты, уже зарезервированные гражданином.
// Используется как проверка существования при неопределенном исходе Reserve.
func (c *Client) GetReservedSlots(ctx context.Context, citizenNIC string) ([]Slot, error) {
	url := fmt.Sprintf("%s/api/v1/appointments/reserved_user/get_slots/%s", c.baseURL, citizenNIC)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// Продолжаем обработку
	case resp.StatusCode == http.StatusNotFound:
		// У гражданина нет резервирований
		return []Slot{}, nil
	case resp.StatusCode >= http.StatusInternalServerError:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status code %d: %s", ErrUnavailable, resp.StatusCode, string(body))
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var slots []Slot
	if err := json.NewDecoder(resp.Body).Decode(&slots); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return slots, nil
}

// isTimeoutError определяет, является ли ошибка запроса таймаутом
func isTimeoutError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
