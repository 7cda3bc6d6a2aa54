package wsbridge

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/llehouerou/pageplayer/internal/catalog"
	"github.com/llehouerou/pageplayer/internal/playback"
)

// Outbound frame types.
const (
	TypeStateInit   = "state_init"
	TypePageChanged = "page_changed"
	TypePlayState   = "play_state_changed"
	TypeStatus      = "status_changed"
	TypeProgress    = "progress"
	TypeRepeatMode  = "repeat_mode_changed"
	TypeSpeed       = "speed_changed"
	TypeVolume      = "volume_changed"
	TypeError       = "error"
)

// envelope is the wire format of every frame in both directions.
type envelope struct {
	Type string          `json:"type"`
	Ts   *time.Time      `json:"ts,omitempty"`
	Data json.RawMessage `json:"data,omitempty"`
}

func encode(typ string, data any, at time.Time) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", typ, err)
	}
	ts := at.UTC()
	return json.Marshal(envelope{Type: typ, Ts: &ts, Data: raw})
}

type pageData struct {
	ID    int    `json:"id"`
	Audio string `json:"audio"`
	Cover string `json:"cover,omitempty"`
}

func toPageData(p catalog.Page) pageData {
	return pageData{ID: p.ID, Audio: p.AudioRef, Cover: p.CoverRef}
}

type snapshotData struct {
	Status     string     `json:"status"`
	Playing    bool       `json:"playing"`
	Index      int        `json:"index"`
	Page       *pageData  `json:"page,omitempty"`
	Pages      []pageData `json:"pages"`
	Repeat     string     `json:"repeat"`
	Speed      float64    `json:"speed"`
	Volume     float64    `json:"volume"`
	Muted      bool       `json:"muted"`
	PositionMS int64      `json:"position_ms"`
	DurationMS int64      `json:"duration_ms"`
}

func toSnapshotData(s playback.Snapshot) snapshotData {
	out := snapshotData{
		Status:     s.Status.String(),
		Playing:    s.State.IsPlaying,
		Index:      s.State.CurrentIndex,
		Pages:      make([]pageData, 0, len(s.Pages)),
		Repeat:     repeatName(s.State.RepeatMode),
		Speed:      s.State.Speed,
		Volume:     s.State.Volume,
		Muted:      s.State.Muted,
		PositionMS: s.Position.Milliseconds(),
		DurationMS: s.Duration.Milliseconds(),
	}
	for _, p := range s.Pages {
		out.Pages = append(out.Pages, toPageData(p))
	}
	if p, ok := s.Page(); ok {
		pd := toPageData(p)
		out.Page = &pd
	}
	return out
}

type pageChangedData struct {
	Previous int      `json:"previous"`
	Index    int      `json:"index"`
	Page     pageData `json:"page"`
}

type playStateData struct {
	Playing bool `json:"playing"`
}

type statusData struct {
	Previous string `json:"previous"`
	Current  string `json:"current"`
}

type progressData struct {
	PositionMS int64 `json:"position_ms"`
	DurationMS int64 `json:"duration_ms"`
}

type repeatData struct {
	Mode string `json:"mode"`
}

type speedData struct {
	Speed float64 `json:"speed"`
}

type volumeData struct {
	Volume float64 `json:"volume"`
	Muted  bool    `json:"muted"`
}

type errorData struct {
	Operation string `json:"operation"`
	Index     int    `json:"index"`
	Message   string `json:"message"`
}

func repeatName(m playback.RepeatMode) string {
	return strings.ToLower(m.String())
}

func parseRepeat(s string) (playback.RepeatMode, error) {
	for _, m := range []playback.RepeatMode{playback.RepeatOff, playback.RepeatPage, playback.RepeatAll} {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: repeat mode %q", ErrBadCommand, s)
}

// ErrBadCommand is returned for frames that do not describe a known command.
var ErrBadCommand = errors.New("bad command")

// commandData holds the optional arguments of every command.
type commandData struct {
	Index      *int     `json:"index"`
	Play       bool     `json:"play"`
	Mode       string   `json:"mode"`
	Speed      *float64 `json:"speed"`
	Volume     *float64 `json:"volume"`
	Delta      *float64 `json:"delta"`
	Muted      *bool    `json:"muted"`
	PositionMS *int64   `json:"position_ms"`
	DeltaMS    *int64   `json:"delta_ms"`
}

// parseCommand decodes an inbound frame into an engine operation.
//
//	{"type":"load","data":{"index":3,"play":true}}
//	{"type":"repeat","data":{"mode":"page"}}   // no mode cycles
//	{"type":"speed","data":{"delta":0.25}}
//	{"type":"mute"}                            // no muted toggles
//	{"type":"seek","data":{"delta_ms":-5000}}
func parseCommand(raw []byte) (string, func(*playback.Engine) error, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBadCommand, err)
	}
	var d commandData
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return env.Type, nil, fmt.Errorf("%w: %s: %w", ErrBadCommand, env.Type, err)
		}
	}

	switch env.Type {
	case "toggle":
		return env.Type, (*playback.Engine).Toggle, nil
	case "play":
		return env.Type, (*playback.Engine).Play, nil
	case "pause":
		return env.Type, func(e *playback.Engine) error { e.Pause(); return nil }, nil
	case "next":
		return env.Type, (*playback.Engine).Next, nil
	case "prev":
		return env.Type, (*playback.Engine).Prev, nil

	case "load":
		if d.Index == nil {
			return env.Type, nil, fmt.Errorf("%w: load needs an index", ErrBadCommand)
		}
		index, play := *d.Index, d.Play
		return env.Type, func(e *playback.Engine) error { return e.LoadTrack(index, play) }, nil

	case "repeat":
		if d.Mode == "" {
			return env.Type, func(e *playback.Engine) error { e.CycleRepeatMode(); return nil }, nil
		}
		mode, err := parseRepeat(d.Mode)
		if err != nil {
			return env.Type, nil, err
		}
		return env.Type, func(e *playback.Engine) error { return e.SetRepeatMode(mode) }, nil

	case "speed":
		switch {
		case d.Speed != nil:
			x := *d.Speed
			return env.Type, func(e *playback.Engine) error { e.SetSpeed(x); return nil }, nil
		case d.Delta != nil:
			dx := *d.Delta
			return env.Type, func(e *playback.Engine) error { e.AdjustSpeed(dx); return nil }, nil
		}
		return env.Type, nil, fmt.Errorf("%w: speed needs speed or delta", ErrBadCommand)

	case "volume":
		switch {
		case d.Volume != nil:
			v := *d.Volume
			return env.Type, func(e *playback.Engine) error { e.SetVolume(v); return nil }, nil
		case d.Delta != nil:
			dv := *d.Delta
			return env.Type, func(e *playback.Engine) error { e.AdjustVolume(dv); return nil }, nil
		}
		return env.Type, nil, fmt.Errorf("%w: volume needs volume or delta", ErrBadCommand)

	case "mute":
		if d.Muted == nil {
			return env.Type, func(e *playback.Engine) error { e.ToggleMute(); return nil }, nil
		}
		muted := *d.Muted
		return env.Type, func(e *playback.Engine) error { e.SetMuted(muted); return nil }, nil

	case "seek":
		switch {
		case d.PositionMS != nil:
			pos := time.Duration(*d.PositionMS) * time.Millisecond
			return env.Type, func(e *playback.Engine) error { return e.Seek(pos) }, nil
		case d.DeltaMS != nil:
			delta := time.Duration(*d.DeltaMS) * time.Millisecond
			return env.Type, func(e *playback.Engine) error {
				pos, _ := e.Progress()
				return e.Seek(pos + delta)
			}, nil
		}
		return env.Type, nil, fmt.Errorf("%w: seek needs position_ms or delta_ms", ErrBadCommand)
	}

	return env.Type, nil, fmt.Errorf("%w: unknown type %q", ErrBadCommand, env.Type)
}
