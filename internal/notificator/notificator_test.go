package notificator

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/go-telegram/bot"
	tgModels "github.com/go-telegram/bot/models"

	"github.com/argab/lottery/pkg/logger"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []*bot.SendMessageParams
	err  error
}

func (f *fakeSender) SendMessage(_ context.Context, params *bot.SendMessageParams) (*tgModels.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, params)
	if f.err != nil {
		return nil, f.err
	}
	return &tgModels.Message{ID: len(f.sent)}, nil
}

func newTestTelegram(sender messageSender, adminChatID int64) *TelegramNotificator {
	return &TelegramNotificator{logger: logger.NewNopLogger(), sender: sender, adminChatID: adminChatID}
}

func TestSMSGateway(t *testing.T) {
	received := make(chan smsPayload, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		var payload smsPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode: %v", err)
		}
		received <- payload
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sms := NewSMSNotificator(logger.NewNopLogger(), srv.URL, "key-1", "LottoWin")
	if !sms.Send(context.Background(), "+251911234567", "hello") {
		t.Fatal("expected delivery")
	}
	want := smsPayload{APIKey: "key-1", To: "+251911234567", Message: "hello", Sender: "LottoWin"}
	if got := <-received; got != want {
		t.Fatalf("payload = %+v, want %+v", got, want)
	}
}

func TestSMSGatewayFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	sms := NewSMSNotificator(logger.NewNopLogger(), srv.URL, "", "LottoWin")
	if sms.Send(context.Background(), "+251911234567", "hello") {
		t.Fatal("non-200 response should report failure")
	}

	unreachable := NewSMSNotificator(logger.NewNopLogger(), "http://127.0.0.1:1/send", "", "LottoWin")
	if unreachable.Send(context.Background(), "+251911234567", "hello") {
		t.Fatal("unreachable gateway should report failure")
	}
}

func TestSMSWithoutGateway(t *testing.T) {
	sms := NewSMSNotificator(logger.NewNopLogger(), "", "", "LottoWin")
	if !sms.Send(context.Background(), "+251911234567", "hello") {
		t.Fatal("console delivery should succeed")
	}
}

func TestNotifyAdmin(t *testing.T) {
	sender := &fakeSender{}
	tg := newTestTelegram(sender, 42)
	tg.NotifyAdmin(context.Background(), "new application")

	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(sender.sent))
	}
	if sender.sent[0].ChatID != int64(42) || sender.sent[0].Text != "new application" {
		t.Fatalf("unexpected message: %+v", sender.sent[0])
	}

	unconfigured := &fakeSender{}
	newTestTelegram(unconfigured, 0).NotifyAdmin(context.Background(), "ignored")
	if len(unconfigured.sent) != 0 {
		t.Fatal("no message expected without an admin chat")
	}
}

func TestTelegramStartHandler(t *testing.T) {
	sender := &fakeSender{}
	tg := newTestTelegram(sender, 0)
	ctx := context.Background()

	tg.handler(ctx, nil, nil)
	tg.handler(ctx, nil, &tgModels.Update{})
	tg.handler(ctx, nil, &tgModels.Update{Message: &tgModels.Message{Text: "/start", Chat: tgModels.Chat{ID: 7}}})
	tg.handler(ctx, nil, &tgModels.Update{Message: &tgModels.Message{
		Text: "hello",
		Chat: tgModels.Chat{ID: 7},
		From: &tgModels.User{Username: "abebe"},
	}})
	if len(sender.sent) != 0 {
		t.Fatalf("only /start from a user should be answered, got %d messages", len(sender.sent))
	}

	tg.handler(ctx, nil, &tgModels.Update{Message: &tgModels.Message{
		Text: "/start",
		Chat: tgModels.Chat{ID: 7},
		From: &tgModels.User{Username: "abebe"},
	}})
	if len(sender.sent) != 1 {
		t.Fatalf("expected reply to /start, got %d messages", len(sender.sent))
	}
	if !strings.Contains(sender.sent[0].Text, "7") {
		t.Fatalf("reply should contain the chat id: %q", sender.sent[0].Text)
	}
}

type panickingSender struct{}

func (panickingSender) SendMessage(context.Context, *bot.SendMessageParams) (*tgModels.Message, error) {
	panic("telegram exploded")
}

func TestNotificatorSend(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	log := logger.NewNopLogger()
	sender := &fakeSender{err: errors.New("forbidden")}
	n := NewNotificator(log, NewSMSNotificator(log, srv.URL, "", "LottoWin"), newTestTelegram(sender, 42))

	if !n.Send(context.Background(), "+251911234567", "hello") {
		t.Fatal("SMS delivery should decide the result")
	}
	if calls.Load() != 1 {
		t.Fatalf("gateway calls = %d", calls.Load())
	}
	if len(sender.sent) != 1 || sender.sent[0].Text != "+251911234567: hello" {
		t.Fatalf("telegram mirror not attempted: %+v", sender.sent)
	}
}

func TestNotificatorRecoversPanics(t *testing.T) {
	log := logger.NewNopLogger()
	n := NewNotificator(log, NewSMSNotificator(log, "", "", "LottoWin"), newTestTelegram(panickingSender{}, 42))
	if !n.Send(context.Background(), "+251911234567", "hello") {
		t.Fatal("telegram panic must not affect SMS delivery")
	}

	empty := NewNotificator(log, nil, nil)
	if empty.Send(context.Background(), "+251911234567", "hello") {
		t.Fatal("no channel configured should report failure")
	}
}
