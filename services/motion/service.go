// Package motion owns the accelerometer: it applies retained profiles from
// config/motion, polls samples, drains latched events, and publishes typed
// payloads on the bus.
package motion

import (
	"context"
	"errors"
	"sync"
	"time"

	"motioncode-go/bus"
	"motioncode-go/drivers/msa300"
	"motioncode-go/errcode"
	"motioncode-go/types"
	"motioncode-go/x/mathx"
	"motioncode-go/x/timex"
)

var (
	topicConfig    = bus.T("config", "motion")
	topicInfo      = bus.T("motion", "info")
	topicState     = bus.T("motion", "state")
	topicSample    = bus.T("motion", "sample")
	topicSampleGet = bus.T("motion", "sample", "get")
	topicOrient    = bus.T("motion", "orient")

	topicEvtTap      = bus.T("motion", "event", "tap")
	topicEvtActive   = bus.T("motion", "event", "active")
	topicEvtFreefall = bus.T("motion", "event", "freefall")
	topicEvtOrient   = bus.T("motion", "event", "orient")
)

type Service struct {
	dev  *msa300.Device
	info types.AccelInfo

	mu   sync.Mutex
	last types.AccelSample
	seen bool
}

func New(dev *msa300.Device, info types.AccelInfo) *Service {
	return &Service{dev: dev, info: info}
}

// Start launches the service loop.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	go s.serviceLoop(ctx, conn)
	return nil
}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection) {
	cfgSub := conn.Subscribe(topicConfig)
	defer conn.Unsubscribe(cfgSub)
	getSub := conn.Subscribe(topicSampleGet)
	defer conn.Unsubscribe(getSub)

	conn.Publish(conn.NewMessage(topicInfo, types.Info{
		SchemaVersion: 1,
		Driver:        "msa300",
		Detail:        s.info,
	}, true))
	s.publishState(conn, "idle", "awaiting_config")

	// Parked until a profile with a sample interval arrives.
	tick := time.NewTicker(time.Hour)
	defer tick.Stop()
	sampling := false

	for {
		select {
		case <-ctx.Done():
			s.publishState(conn, "stopped", "context_cancelled")
			return

		case msg, ok := <-cfgSub.Channel():
			if !ok {
				s.publishState(conn, "error", "config_subscription_closed")
				return
			}
			cfg, err := decodeProfile(msg.Payload)
			if err != nil {
				s.publishState(conn, "error", string(errcode.BadProfile))
				continue
			}
			if err := s.apply(cfg); err != nil {
				s.publishState(conn, "error", string(applyCode(err)))
				continue
			}
			if cfg.SampleIntervalMs > 0 {
				iv := mathx.Clamp(cfg.SampleIntervalMs, 1, 60_000)
				tick.Reset(time.Duration(iv) * time.Millisecond)
				sampling = true
			} else {
				tick.Reset(time.Hour)
				sampling = false
			}
			s.publishState(conn, "ready", "profile_applied")

		case <-tick.C:
			if !sampling {
				continue
			}
			if err := s.sampleOnce(conn); err != nil {
				s.publishState(conn, "error", string(errcode.BusFault))
			}

		case msg, ok := <-getSub.Channel():
			if !ok {
				return
			}
			s.mu.Lock()
			last, seen := s.last, s.seen
			s.mu.Unlock()
			if seen {
				conn.Reply(msg, last, false)
			} else {
				conn.Reply(msg, types.ErrorReply{Error: string(errcode.SensorNotReady)}, false)
			}
		}
	}
}

// applyCode maps a profile-apply failure to a bus-facing code.
func applyCode(err error) errcode.Code {
	if errors.Is(err, msa300.ErrWrongPart) {
		return errcode.SensorNotFound
	}
	return errcode.BusFault
}

// sampleOnce reads one snapshot, publishes it retained, then drains and
// re-arms any latched events.
func (s *Service) sampleOnce(conn *bus.Connection) error {
	x, y, z, err := s.dev.RawAxes()
	if err != nil {
		return err
	}
	mult := s.dev.Multiplier()
	now := timex.NowMs()

	sample := types.AccelSample{
		RawX: x, RawY: y, RawZ: z,
		X:  float32(x) * mult * msa300.Gravity,
		Y:  float32(y) * mult * msa300.Gravity,
		Z:  float32(z) * mult * msa300.Gravity,
		TS: now,
	}
	s.mu.Lock()
	s.last, s.seen = sample, true
	s.mu.Unlock()
	conn.Publish(conn.NewMessage(topicSample, sample, true))

	st, err := s.dev.CheckInterrupts()
	if err != nil {
		return err
	}
	if !st.Any() {
		return nil
	}

	if st.SingleTap || st.DoubleTap {
		conn.Publish(conn.NewMessage(topicEvtTap, types.TapEvent{
			Double:    st.DoubleTap,
			Negative:  st.TapSign,
			FirstAxis: firstAxis(st.TapFirstX, st.TapFirstY, st.TapFirstZ),
			TS:        now,
		}, false))
	}
	if st.Active {
		conn.Publish(conn.NewMessage(topicEvtActive, types.ActiveEvent{
			Negative:  st.ActiveSign,
			FirstAxis: firstAxis(st.ActiveFirstX, st.ActiveFirstY, st.ActiveFirstZ),
			TS:        now,
		}, false))
	}
	if st.Freefall {
		conn.Publish(conn.NewMessage(topicEvtFreefall, types.FreefallEvent{TS: now}, false))
	}
	if st.Orientation {
		o, err := s.dev.Orientation()
		if err != nil {
			return err
		}
		evt := types.OrientEvent{Z: zString(o.Z), XY: xyString(o.XY), TS: now}
		conn.Publish(conn.NewMessage(topicEvtOrient, evt, false))
		conn.Publish(conn.NewMessage(topicOrient, evt, true))
	}

	// Re-arm the latch so the next events register.
	return s.dev.ResetLatch()
}

func firstAxis(x, y, z bool) string {
	switch {
	case x:
		return "x"
	case y:
		return "y"
	case z:
		return "z"
	default:
		return ""
	}
}

func zString(z msa300.ZOrient) string {
	if z == msa300.ZDownward {
		return "downward"
	}
	return "upward"
}

func xyString(xy msa300.XYOrient) string {
	switch xy {
	case msa300.PortraitUpsideDown:
		return "portrait_upside_down"
	case msa300.LandscapeLeft:
		return "landscape_left"
	case msa300.LandscapeRight:
		return "landscape_right"
	default:
		return "portrait_upright"
	}
}

func (s *Service) publishState(conn *bus.Connection, level, status string) {
	conn.Publish(conn.NewMessage(topicState, types.ServiceState{
		Level:  level,
		Status: status,
		TS:     timex.NowMs(),
	}, true))
}
