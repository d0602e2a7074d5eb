package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestWebSocket_RequiresToken(t *testing.T) {
	srv := testServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/v1/ws"
	for _, u := range []string{url, url + "?token=bogus"} {
		_, resp, err := websocket.DefaultDialer.Dial(u, nil)
		if err == nil {
			t.Fatalf("Dial(%s) should fail", u)
		}
		if resp == nil || resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("Dial(%s) response = %v, want 401", u, resp)
		}
	}
}

func TestWebSocket_BroadcastsTargetsAndValues(t *testing.T) {
	srv := testServer(t)
	c := newClient(t, srv)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/v1/ws?token=" + c.token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()

	sub := WSMessage{
		Type:    WSTypeSubscribe,
		ID:      "sub-1",
		Payload: WSSubscribePayload{Channels: []string{ChannelActuatorTarget, ChannelSensorValue}},
	}
	if err := conn.WriteJSON(sub); err != nil {
		t.Fatal(err)
	}
	ack := readUntil(t, conn, func(m WSMessage) bool { return m.Type == WSTypeResponse && m.ID == "sub-1" })
	if ack.Payload == nil {
		t.Error("subscription ack has no payload")
	}
	if n := srv.Hub().ClientCount(); n != 1 {
		t.Errorf("ClientCount() = %d, want 1", n)
	}

	_, d := setupDevice(c)
	var a actuatorView
	c.expect(http.StatusCreated, http.MethodPost, "/api/v1/devices/"+d.ID+"/actuators", createActuatorRequest{FunctionalityID: "BlindSetter"}, &a)
	v := 40.0
	c.expect(http.StatusOK, http.MethodPut, "/api/v1/actuators/"+a.ID+"/target", targetRequest{Value: &v}, nil)

	event := readUntil(t, conn, func(m WSMessage) bool { return m.EventType == ChannelActuatorTarget })
	payload, ok := event.Payload.(map[string]any)
	if !ok || payload["id"] != a.ID || payload["target"] != 40.0 {
		t.Errorf("target event payload = %v", event.Payload)
	}

	var sn sensorView
	c.expect(http.StatusCreated, http.MethodPost, "/api/v1/devices/"+d.ID+"/sensors", createSensorRequest{FunctionalityID: "HumidityPercentage"}, &sn)
	c.expect(http.StatusCreated, http.MethodPost, "/api/v1/sensors/"+sn.ID+"/values", map[string]any{"measurement": "55", "unit": "%"}, nil)

	event = readUntil(t, conn, func(m WSMessage) bool { return m.EventType == ChannelSensorValue })
	payload, ok = event.Payload.(map[string]any)
	if !ok || payload["device_id"] != d.ID || payload["functionality_id"] != "HumidityPercentage" {
		t.Errorf("value event payload = %v", event.Payload)
	}
}

func TestWebSocket_UnknownMessage(t *testing.T) {
	srv := testServer(t)
	c := newClient(t, srv)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	header := http.Header{"Authorization": []string{"Bearer " + c.token}}
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/api/v1/ws", header)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(WSMessage{Type: "dance", ID: "x"}); err != nil {
		t.Fatal(err)
	}
	msg := readUntil(t, conn, func(m WSMessage) bool { return m.ID == "x" })
	if msg.Type != WSTypeError {
		t.Errorf("type = %q, want error", msg.Type)
	}

	if err := conn.WriteJSON(WSMessage{Type: WSTypePing, ID: "p"}); err != nil {
		t.Fatal(err)
	}
	msg = readUntil(t, conn, func(m WSMessage) bool { return m.ID == "p" })
	if msg.Type != WSTypePong {
		t.Errorf("type = %q, want pong", msg.Type)
	}
}

// readUntil reads messages until match accepts one or two seconds pass.
func readUntil(t *testing.T, conn *websocket.Conn, match func(WSMessage) bool) WSMessage {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatal(err)
	}
	for {
		var msg WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("ReadJSON() error = %v", err)
		}
		if match(msg) {
			return msg
		}
	}
}
