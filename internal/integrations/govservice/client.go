package govservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с каталогом GovService
// (учреждения, услуги, типы документов)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента GovService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetOffices получает список государственных учреждений,
// опционально отфильтрованный по категории
func (c *Client) GetOffices(ctx context.Context, categoryID *int64) ([]Office, error) {
	url := fmt.Sprintf("%s/api/v1/gov/offices", c.baseURL)
	if categoryID != nil {
		url = fmt.Sprintf("%s?category_id=%d", url, *categoryID)
	}

	var offices []Office
	if err := c.getJSON(ctx, url, &offices); err != nil {
		return nil, err
	}
	return offices, nil
}

// GetServices получает список услуг указанного учреждения
func (c *Client) GetServices(ctx context.Context, officeID int64) ([]Service, error) {
	url := fmt.Sprintf("%s/api/v1/gov/services/%d", c.baseURL, officeID)

	var services []Service
	if err := c.getJSON(ctx, url, &services); err != nil {
		return nil, err
	}
	return services, nil
}

// GetDocumentType получает тип документа по ID
func (c *Client) GetDocumentType(ctx context.Context, documentTypeID int64) (*DocumentType, error) {
	url := fmt.Sprintf("%s/api/v1/documents/%d", c.baseURL, documentTypeID)

	var docType DocumentType
	if err := c.getJSON(ctx, url, &docType); err != nil {
		return nil, err
	}
	return &docType, nil
}

// getJSON выполняет GET запрос и декодирует JSON ответ
func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Сетевые ошибки и таймауты каталога восстановимы: запрос можно повторить
		return fmt.Errorf("%w: failed to execute request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch {
	case resp.StatusCode == http.StatusOK:
		// Продолжаем обработку
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= http.StatusInternalServerError:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: status code %d: %s", ErrUnavailable, resp.StatusCode, string(body))
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
