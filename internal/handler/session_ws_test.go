package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/reflet/internal/db"
)

func TestSessionSocketRequiresSession(t *testing.T) {
	env := newHandlerTestEnv(t, Options{})
	env.router.GET("/admin/ws/session", env.api.SessionSocket)

	rr := env.do(httptest.NewRequest(http.MethodGet, "/admin/ws/session", nil), "")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
}

func TestSessionSocketPushesSignedOut(t *testing.T) {
	env := newHandlerTestEnv(t, Options{})
	env.registerAuthRoutes()
	env.router.GET("/admin/ws/session", env.api.SessionSocket)

	cookie := env.signIn(t, "admin@reflet.example", "motdepasse1", db.RoleAdmin)

	server := httptest.NewServer(env.router)
	defer server.Close()

	header := http.Header{}
	header.Set("Cookie", cookie)
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http")+"/admin/ws/session", header)
	if err != nil {
		t.Fatalf("failed to dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for env.api.Auth().Notifier().Len() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("socket never subscribed")
		}
		time.Sleep(10 * time.Millisecond)
	}

	// signing out from another tab
	env.do(httptest.NewRequest(http.MethodPost, "/admin/logout", nil), cookie)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg sessionMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("failed to read message: %v", err)
	}
	if msg.Type != "signed_out" || msg.At == "" {
		t.Fatalf("unexpected message: %+v", msg)
	}
}

func TestSameOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://reflet.example/admin/ws/session", nil)
	if !sameOrigin(req) {
		t.Fatal("expected request without origin to pass")
	}
	req.Header.Set("Origin", "http://reflet.example")
	if !sameOrigin(req) {
		t.Fatal("expected same origin to pass")
	}
	req.Header.Set("Origin", "http://evil.example")
	if sameOrigin(req) {
		t.Fatal("expected foreign origin to be rejected")
	}
}
