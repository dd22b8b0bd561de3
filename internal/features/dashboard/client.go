package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"corex.ru/progress-bot/internal/common"
)

// maxBodySize — предохранитель от бесконечного тела ответа.
const maxBodySize = 1 << 20

// Facts — сводка по финансам пользователя из основного приложения CoreX.
// Всё, что нужно движку прогресса: щит, долги, подушка, статистика побед.
type Facts struct {
	ShieldFillPercent float64 `json:"shield_fill_percent"`
	TotalDebt         float64 `json:"total_debt"`
	LiquidCash        float64 `json:"liquid_cash"`
	DebtsEliminated   int     `json:"debts_eliminated"`
	AccountCount      int     `json:"account_count"`
	InterestSaved     float64 `json:"interest_saved"`
}

// Client ходит в HTTP API основного приложения за фактами.
// Пустой baseURL означает автономный режим: фактов нет, фичи,
// зависящие от них, деградируют по месту вызова.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logrus.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *logrus.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// Enabled сообщает, настроена ли интеграция с основным приложением.
func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

// Fetch запрашивает сводку фактов для пользователя.
// Возвращает common.ErrFactsUnavailable при любой сетевой или
// протокольной беде: вызывающий код решает, как деградировать.
func (c *Client) Fetch(ctx context.Context, userID int64) (Facts, error) {
	if !c.Enabled() {
		return Facts{}, common.ErrFactsUnavailable
	}

	endpoint := fmt.Sprintf("%s/dashboard/summary?user_id=%s",
		c.baseURL, url.QueryEscape(strconv.FormatInt(userID, 10)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Facts{}, fmt.Errorf("сборка запроса к CoreX: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.WithError(err).WithField("user_id", userID).
			Warn("CoreX API недоступен")
		return Facts{}, common.ErrFactsUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.WithFields(logrus.Fields{
			"user_id": userID,
			"status":  resp.StatusCode,
		}).Warn("CoreX API ответил ошибкой")
		return Facts{}, common.ErrFactsUnavailable
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return Facts{}, common.ErrFactsUnavailable
	}

	var f Facts
	if err := json.Unmarshal(body, &f); err != nil {
		c.log.WithError(err).Warn("CoreX API вернул невалидный JSON")
		return Facts{}, common.ErrFactsUnavailable
	}
	return f, nil
}
