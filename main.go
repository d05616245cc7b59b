// Host demo: the full motion stack running against the register-level
// simulator. Prints samples and events as they cross the bus.
package main

import (
	"context"
	"math"
	"time"

	"motioncode-go/bus"
	"motioncode-go/drivers/msa300"
	"motioncode-go/drivers/msa300/msasim"
	"motioncode-go/services/config"
	"motioncode-go/services/heartbeat"
	"motioncode-go/services/motion"
	"motioncode-go/types"
	"motioncode-go/x/fmtx"
)

func main() {
	ctx := context.WithValue(context.Background(), config.CtxDeviceKey, "sim")

	b := bus.NewBus(32)
	sim := msasim.New()
	dev := msa300.NewWithTransport(sim)

	motionSvc := motion.New(dev, types.AccelInfo{Sensor: "msa300", Bus: "sim"})
	if err := motionSvc.Start(ctx, b.NewConnection("motion")); err != nil {
		println("Error: motion:", err.Error())
		return
	}
	hb := &heartbeat.Service{}
	_ = hb.Start(ctx, b.NewConnection("heartbeat"))
	config.NewConfigService().Start(ctx, b.NewConnection("config"))

	ui := b.NewConnection("ui")
	samples := ui.Subscribe(bus.T("motion", "sample"))
	events := ui.Subscribe(bus.T("motion", "event", bus.WildAll))
	states := ui.Subscribe(bus.T("motion", "state"))

	// Feed the simulator: gravity rotating slowly from Z toward X, with a
	// tap and a freefall injected along the way.
	go func() {
		const oneG = 1 / 0.0078 // counts per g in the 4g range
		t := 0.0
		for {
			time.Sleep(50 * time.Millisecond)
			t += 0.05
			x := int16(oneG * math.Sin(t/4))
			z := int16(oneG * math.Cos(t/4))
			sim.SetAcceleration(x, 0, z)
		}
	}()
	go func() {
		time.Sleep(3 * time.Second)
		sim.TriggerSingleTap(false, 0)
		time.Sleep(2 * time.Second)
		sim.TriggerFreefall()
	}()

	lastPrint := time.Time{}
	for {
		select {
		case m := <-states.Channel():
			if st, ok := m.Payload.(types.ServiceState); ok {
				fmtx.Printf("state: %s (%s)\n", st.Level, st.Status)
			}
		case m := <-samples.Channel():
			// Samples arrive every 50 ms; print once a second.
			if time.Since(lastPrint) < time.Second {
				continue
			}
			lastPrint = time.Now()
			if s, ok := m.Payload.(types.AccelSample); ok {
				fmtx.Printf("sample: x=%v y=%v z=%v m/s²\n", s.X, s.Y, s.Z)
			}
		case m := <-events.Channel():
			kind, _ := m.Topic[len(m.Topic)-1].(string)
			fmtx.Printf("event: %s %v\n", kind, m.Payload)
		}
	}
}
