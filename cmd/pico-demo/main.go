// Command pico-demo: MSA300 bring-up for RP2040/Pico.
//
// Build/flash (TinyGo):
//   tinygo flash -target pico ./cmd/pico-demo
//
// Wiring assumptions:
// - I2C0 @ 400 kHz on Pico defaults: SDA=GP4, SCL=GP5.
// - MSA300 on I2C address 0x26 (SDO low).
// - UART0 on GP0/GP1 mirrors the sample stream at 115200 baud.

//go:build rp2040

package main

import (
	"context"
	"time"

	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"

	"motioncode-go/bus"
	"motioncode-go/drivers/msa300"
	"motioncode-go/services/config"
	"motioncode-go/services/heartbeat"
	"motioncode-go/services/motion"
	"motioncode-go/types"
	"motioncode-go/x/fmtx"
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(3 * time.Second)
	println("== motioncode: Pico demo (MSA300) ==")

	machine.I2C0.Configure(machine.I2CConfig{
		Frequency: 400_000,
		SDA:       machine.I2C0_SDA_PIN,
		SCL:       machine.I2C0_SCL_PIN,
	})

	// Mirror output on UART0 for headless boards.
	uart := uartx.UART0
	_ = uart.Configure(uartx.UARTConfig{
		BaudRate: 115_200,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	})
	fmtx.DefaultOutput = uart

	ctx := context.WithValue(context.Background(), config.CtxDeviceKey, "pico")

	b := bus.NewBus(32)
	dev := msa300.New(machine.I2C0, msa300.AddressDefault)

	motionSvc := motion.New(dev, types.AccelInfo{
		Sensor: "msa300",
		Addr:   msa300.AddressDefault,
		Bus:    "i2c0",
	})
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

	for {
		select {
		case m := <-states.Channel():
			if st, ok := m.Payload.(types.ServiceState); ok {
				println("state:", st.Level, st.Status)
				fmtx.Printf("state %s %s\n", st.Level, st.Status)
			}
		case m := <-samples.Channel():
			if s, ok := m.Payload.(types.AccelSample); ok {
				fmtx.Printf("sample %v %v %v\n", s.X, s.Y, s.Z)
			}
		case m := <-events.Channel():
			kind, _ := m.Topic[len(m.Topic)-1].(string)
			println("event:", kind)
			fmtx.Printf("event %s %v\n", kind, m.Payload)
		}
	}
}
