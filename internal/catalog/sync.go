package catalog

import (
	"encoding/json"

	"go.uber.org/zap"
)

// MessageKindUpdate is the only message kind on the sync topic: a full
// catalog snapshot that wholesale-replaces the receiver's state.
const MessageKindUpdate = "UPDATE"

// envelope is the wire format on the broadcast topic. Origin is the sending
// instance's id; receivers drop their own messages since the transport may
// echo them back. Decoders ignore unknown fields, so payloads without an
// origin still apply.
type envelope struct {
	Kind     string    `json:"type"`
	Origin   string    `json:"origin,omitempty"`
	Products []Product `json:"products"`
}

func (s *Store) publish(snap []Product) {
	if s.channel == nil {
		return
	}

	payload, err := json.Marshal(envelope{
		Kind:     MessageKindUpdate,
		Origin:   s.origin,
		Products: snap,
	})
	if err != nil {
		s.log.Warn("sync publish marshal failed", zap.Error(err))
		return
	}

	if err := s.channel.Publish(payload); err != nil {
		s.log.Warn("sync publish failed", zap.Error(err))
	}
}

// handleMessage applies one payload from the sync topic. Malformed payloads
// and unknown kinds are dropped; nothing here may take the instance down.
func (s *Store) handleMessage(payload []byte) {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		s.log.Debug("dropping malformed sync message", zap.Error(err))
		return
	}
	if env.Kind != MessageKindUpdate {
		return
	}
	if env.Origin == s.origin {
		return
	}

	s.setAll(env.Products, false)
}
