package domain

import (
	"testing"
)

func TestParseDeliveryMethod(t *testing.T) {
	cases := []struct {
		in      string
		want    DeliveryMethod
		wantErr bool
	}{
		{"DRIVE", Drive, false},
		{"delivery", Delivery, false},
		{" Delivery_Today ", DeliveryToday, false},
		{"DELIVERY_ASAP", DeliveryASAP, false},
		{"TELEPORT", "", true},
		{"", "", true},
	}

	for _, c := range cases {
		got, err := ParseDeliveryMethod(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseDeliveryMethod(%q): expected error, got %q", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDeliveryMethod(%q): unexpected error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseDeliveryMethod(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestScheduleFor(t *testing.T) {
	for _, m := range []DeliveryMethod{Drive, Delivery} {
		sched := ScheduleFor(m)
		if len(sched.Windows) != 4 {
			t.Fatalf("%s: expected 4 windows, got %d", m, len(sched.Windows))
		}
		if sched.TodayOnly || sched.Rolling {
			t.Fatalf("%s: expected plain fixed schedule, got %+v", m, sched)
		}
		if sched.Windows[0].Start != NewTimeOfDay(9, 0) || sched.Windows[3].End != NewTimeOfDay(18, 0) {
			t.Fatalf("%s: unexpected window bounds: %+v", m, sched.Windows)
		}
	}

	today := ScheduleFor(DeliveryToday)
	if len(today.Windows) != 2 || !today.TodayOnly || today.Rolling {
		t.Fatalf("DELIVERY_TODAY: unexpected schedule: %+v", today)
	}
	if today.Windows[0].Start != NewTimeOfDay(14, 0) {
		t.Fatalf("DELIVERY_TODAY: first window starts %s, want 14:00", today.Windows[0].Start)
	}

	asap := ScheduleFor(DeliveryASAP)
	if !asap.Rolling || !asap.TodayOnly || len(asap.Windows) != 0 {
		t.Fatalf("DELIVERY_ASAP: unexpected schedule: %+v", asap)
	}
}

func TestTimeOfDayRoundTrip(t *testing.T) {
	cases := []string{"00:00", "09:00", "16:30", "23:59"}
	for _, c := range cases {
		parsed, err := ParseTimeOfDay(c)
		if err != nil {
			t.Fatalf("ParseTimeOfDay(%q): %v", c, err)
		}
		if parsed.String() != c {
			t.Errorf("round trip %q -> %q", c, parsed.String())
		}
	}

	if _, err := ParseTimeOfDay("24:00"); err == nil {
		t.Error("expected error for 24:00")
	}
	if _, err := ParseTimeOfDay("bogus"); err == nil {
		t.Error("expected error for non-numeric input")
	}
}

func TestTimeOfDayTruncateAndAdd(t *testing.T) {
	tod := NewTimeOfDay(16, 45)
	if tod.TruncateHour() != NewTimeOfDay(16, 0) {
		t.Fatalf("TruncateHour = %s, want 16:00", tod.TruncateHour())
	}
	if tod.TruncateHour().AddHours(2) != NewTimeOfDay(18, 0) {
		t.Fatalf("AddHours = %s, want 18:00", tod.TruncateHour().AddHours(2))
	}
	if !NewTimeOfDay(18, 1).After(NewTimeOfDay(18, 0)) {
		t.Fatal("18:01 should be after 18:00")
	}
	if NewTimeOfDay(18, 0).After(NewTimeOfDay(18, 0)) {
		t.Fatal("18:00 should not be after itself")
	}
}
