package notify

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"signal_bot/internal/models"
	"signal_bot/pkg/logger"
)

// Notifier — канал уведомлений демона. Confirm блокирует до ответа,
// таймаута или отмены ctx.
type Notifier interface {
	Send(msg string)
	Sendf(format string, args ...any)
	Confirm(ctx context.Context, prompt string, timeout time.Duration) bool
}

// BalanceFunc отдаёт баланс площадки для команды /balance.
type BalanceFunc func(ctx context.Context) (models.Balances, error)

const (
	cbConfirm = "CONF"
	cbReject  = "REJ"
)

// Telegram пишет в один чат и держит карту ожидающих подтверждений:
// токен кнопки -> канал ответа.
type Telegram struct {
	bot     *tgbot.BotAPI
	chatID  int64
	balance BalanceFunc

	mu      sync.Mutex
	waiting map[string]*ask
}

type ask struct {
	answer chan bool
	msgID  int
	prompt string
}

func NewTelegram(token string, chatID int64, balance BalanceFunc) (*Telegram, error) {
	b, err := tgbot.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Telegram{
		bot:     b,
		chatID:  chatID,
		balance: balance,
		waiting: make(map[string]*ask),
	}, nil
}

func (t *Telegram) Send(msg string) {
	if t == nil || t.bot == nil || t.chatID == 0 {
		return
	}
	if _, err := t.bot.Send(tgbot.NewMessage(t.chatID, msg)); err != nil {
		logger.Error("telegram send: %v", err)
	}
}

func (t *Telegram) Sendf(format string, args ...any) { t.Send(fmt.Sprintf(format, args...)) }

// Confirm показывает кнопки Исполнить/Пропустить и ждёт нажатия.
// Без ответа за timeout сделка пропускается.
func (t *Telegram) Confirm(ctx context.Context, prompt string, timeout time.Duration) bool {
	if t == nil || t.bot == nil || t.chatID == 0 {
		return true
	}

	token := uuid.NewString()
	a := &ask{answer: make(chan bool, 1), prompt: prompt}

	t.mu.Lock()
	t.waiting[token] = a
	t.mu.Unlock()

	kb := tgbot.NewInlineKeyboardMarkup(tgbot.NewInlineKeyboardRow(
		tgbot.NewInlineKeyboardButtonData("✅ Исполнить", cbConfirm+"::"+token),
		tgbot.NewInlineKeyboardButtonData("❌ Пропустить", cbReject+"::"+token),
	))
	msg := tgbot.NewMessage(t.chatID, prompt)
	msg.ReplyMarkup = kb

	sent, err := t.bot.Send(msg)
	if err != nil {
		logger.Error("telegram confirm: %v", err)
		t.forget(token)
		return false
	}
	a.msgID = sent.MessageID

	tmr := time.NewTimer(timeout)
	defer tmr.Stop()

	select {
	case ok := <-a.answer:
		return ok
	case <-tmr.C:
		if t.forget(token) == nil {
			// кнопку успели нажать, ответ уже в пути
			return <-a.answer
		}
		t.finalize(a, "⏳ Таймаут")
		return false
	case <-ctx.Done():
		if t.forget(token) != nil {
			t.finalize(a, "⛔️ Отменено")
		}
		return false
	}
}

// HandleCallback разбирает нажатие кнопки: CONF::token / REJ::token.
func (t *Telegram) HandleCallback(cb *tgbot.CallbackQuery) {
	if t == nil || t.bot == nil || cb == nil {
		return
	}

	// гасим спиннер на кнопке
	if _, err := t.bot.Request(tgbot.NewCallback(cb.ID, "")); err != nil {
		logger.Error("telegram callback ack: %v", err)
	}

	verb, token, found := strings.Cut(cb.Data, "::")
	if !found || token == "" {
		return
	}

	// токен изымается сразу: повторный клик ждущего уже не найдёт
	a := t.forget(token)
	if a == nil {
		return
	}

	accepted := verb == cbConfirm
	a.answer <- accepted

	if accepted {
		t.finalize(a, "✅ Подтверждено")
	} else {
		t.finalize(a, "❌ Отклонено")
	}
}

// forget снимает токен с ожидания, возвращает запись, если та ещё была.
func (t *Telegram) forget(token string) *ask {
	t.mu.Lock()
	defer t.mu.Unlock()
	a := t.waiting[token]
	delete(t.waiting, token)
	return a
}

// finalize убирает клавиатуру и дописывает итог под текстом запроса.
func (t *Telegram) finalize(a *ask, note string) {
	if a.msgID == 0 {
		return
	}
	rm := tgbot.NewEditMessageReplyMarkup(t.chatID, a.msgID,
		tgbot.InlineKeyboardMarkup{InlineKeyboard: [][]tgbot.InlineKeyboardButton{}})
	if _, err := t.bot.Request(rm); err != nil {
		logger.Error("telegram edit markup: %v", err)
	}
	edit := tgbot.NewEditMessageText(t.chatID, a.msgID, a.prompt+"\n\n"+note)
	if _, err := t.bot.Request(edit); err != nil {
		logger.Error("telegram edit text: %v", err)
	}
}

// /balance — свободные средства площадки.
func (t *Telegram) handleBalance(ctx context.Context) {
	if t.balance == nil {
		t.Send("❗️ Баланс недоступен")
		return
	}
	bal, err := t.balance(ctx)
	if err != nil {
		t.Sendf("❗️ Ошибка получения баланса: %v", err)
		return
	}
	assets := bal.NonZero()
	if len(assets) == 0 {
		t.Send("📭 На счёте пусто")
		return
	}

	var b strings.Builder
	b.WriteString("💰 Баланс:\n")
	for _, a := range assets {
		fmt.Fprintf(&b, "- %s: %v\n", a, bal[a])
	}
	t.Send(b.String())
}

// Start запускает long-polling: callback_query для кнопок,
// команды принимаются только из настроенного чата.
func (t *Telegram) Start(ctx context.Context) error {
	if t == nil || t.bot == nil {
		return nil
	}

	u := tgbot.NewUpdate(0)
	u.Timeout = 30
	u.AllowedUpdates = []string{"message", "callback_query"}
	updates := t.bot.GetUpdatesChan(u)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case upd := <-updates:
				t.dispatch(ctx, upd)
			}
		}
	}()
	return nil
}

func (t *Telegram) dispatch(ctx context.Context, upd tgbot.Update) {
	if upd.CallbackQuery != nil {
		t.HandleCallback(upd.CallbackQuery)
		return
	}
	m := upd.Message
	if m == nil || m.Chat == nil || m.Chat.ID != t.chatID || !m.IsCommand() {
		return
	}
	switch m.Command() {
	case "balance":
		go t.handleBalance(ctx)
	}
}

func (t *Telegram) Stop() {
	if t == nil || t.bot == nil {
		return
	}
	t.bot.StopReceivingUpdates()
}

// Stdout пишет уведомления в лог и подтверждает всё сам.
type Stdout struct{}

func NewStdout() *Stdout                           { return &Stdout{} }
func (s *Stdout) Send(msg string)                  { logger.Info("%s", msg) }
func (s *Stdout) Sendf(format string, args ...any) { logger.Info(format, args...) }
func (s *Stdout) Confirm(_ context.Context, prompt string, _ time.Duration) bool {
	logger.Info("CONFIRM (auto-yes): %s", prompt)
	return true
}
