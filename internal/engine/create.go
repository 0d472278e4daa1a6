package engine

import (
	"context"
	"time"

	"tally/internal/storage"
)

type AddResult struct {
	TodoID  int64
	Text    string
	DueTime *time.Time
}

// AddTodo parses raw input for a temporal phrase and persists the cleaned
// text plus the resolved due time. With literal set, the input is stored
// verbatim and no due time is extracted.
func (s *Service) AddTodo(ctx context.Context, raw string, literal bool) (*AddResult, error) {
	text, err := normalizeText(raw)
	if err != nil {
		return nil, err
	}

	now := s.now()
	parsed := ParsedInput{Text: text}
	if !literal {
		parsed = s.extractor.Extract(raw, now)
	}

	id, err := s.todos.Insert(ctx, storage.TodoInsert{
		UserID:      storage.MainUserKey,
		Text:        parsed.Text,
		DueTime:     parsed.DueTime,
		CreatedDate: DayOf(now),
		// Creation timestamp doubles as the default manual order.
		DisplayOrder: now.UnixMilli(),
	})
	if err != nil {
		return nil, err
	}

	if err := s.touchActivity(ctx, storage.MainUserKey); err != nil {
		return nil, err
	}

	return &AddResult{TodoID: id, Text: parsed.Text, DueTime: parsed.DueTime}, nil
}

// touchActivity records the user as active now; the notification sweep skips
// users idle for several days.
func (s *Service) touchActivity(ctx context.Context, userID string) error {
	now := s.now()
	set, err := s.settings.GetOrCreate(ctx, userID, DayOf(now), now)
	if err != nil {
		return err
	}
	set.LastActiveTime = now
	return s.settings.Update(ctx, set)
}
