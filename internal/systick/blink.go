package systick

import "context"

// BlinkMillis is the half-period of a blink.
const BlinkMillis = 100

// LEDs is the status light bank.
type LEDs interface {
	Toggle()
}

// Blink toggles the LEDs on and off n times, waiting BlinkMillis on the
// clock after each toggle.
func Blink(ctx context.Context, clock *Clock, leds LEDs, n int) error {
	for i := 0; i < n; i++ {
		for j := 0; j < 2; j++ {
			leds.Toggle()
			if err := clock.Delay(ctx, BlinkMillis); err != nil {
				return err
			}
		}
	}
	return nil
}

// FailStop blinks the LEDs until ctx is done. It is the terminal state after
// a fault; it always returns ctx.Err().
func FailStop(ctx context.Context, clock *Clock, leds LEDs) error {
	for {
		if err := Blink(ctx, clock, leds, 1); err != nil {
			return err
		}
	}
}
