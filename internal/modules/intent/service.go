// README: Intent extraction service; prompts the completion provider and
// converts its loosely-typed reply into a strict TravelIntent.
package intent

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"greenroute/internal/ai"
)

// systemPrompt instructs the model to reply with a single JSON object. The
// normalizer still revalidates every field, so prompt drift cannot leak an
// untyped value into the pipeline.
const systemPrompt = `Bạn là agent chỉ đường tiếng Việt. Đọc câu hỏi của người dùng và trích xuất ý định di chuyển và POI liên quan. Chỉ trả lời JSON đúng cấu trúc sau, không thêm giải thích:
{
  "start": "Tên điểm xuất phát (chuỗi rỗng nếu không chắc)",
  "destination": "Tên điểm đến (chuỗi rỗng nếu không chắc)",
  "constraints": [ {"type": "PUBLIC_PARK|CHARGING_STATION|TOURIST_ATTRACTION|BICYCLE_RENTAL|ANY", "count": 1} ]
}
- Chuẩn hóa loại POI: công viên -> PUBLIC_PARK; trạm sạc/sạc xe điện -> CHARGING_STATION; điểm du lịch/tham quan -> TOURIST_ATTRACTION; thuê xe đạp/trạm xe đạp -> BICYCLE_RENTAL; không xác định -> ANY.
- Giữ nguyên ngôn ngữ tiếng Việt cho start/destination.`

// Extractor turns free-text questions into TravelIntent values.
type Extractor struct {
	completer ai.TextCompleter
	log       *zap.Logger
}

func NewExtractor(completer ai.TextCompleter, log *zap.Logger) *Extractor {
	return &Extractor{completer: completer, log: log}
}

// Extract submits the question to the completion provider. Malformed model
// output degrades to an empty intent and never errors; provider failures
// (missing credential, transport, non-2xx) are returned to the caller.
func (e *Extractor) Extract(ctx context.Context, question, modelOverride string) (TravelIntent, error) {
	reply, err := e.completer.Complete(ctx, modelOverride, systemPrompt, question)
	if err != nil {
		return TravelIntent{}, err
	}

	block, ok := ai.ExtractJSONBlock(reply)
	if !ok {
		e.log.Warn("model reply had no parseable JSON object, degrading to empty intent",
			zap.Int("reply_len", len(reply)))
		return TravelIntent{}, nil
	}

	// The block is known-valid JSON but its field types are not trusted:
	// every field is picked defensively so the untyped map never leaves
	// this function.
	var raw map[string]any
	if err := json.Unmarshal([]byte(block), &raw); err != nil {
		return TravelIntent{}, nil
	}

	ti := TravelIntent{
		StartLabel:       stringField(raw, "start"),
		DestinationLabel: stringField(raw, "destination"),
	}
	if list, ok := raw["constraints"].([]any); ok {
		ti.Constraints = normalizeConstraints(list)
	}
	return ti, nil
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return strings.TrimSpace(s)
}
