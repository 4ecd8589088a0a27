package usecase

import (
	"math"
	"testing"
)

func TestHaversine(t *testing.T) {
	t.Run("zero for identical coordinates", func(t *testing.T) {
		if got := Haversine(12.9716, 77.5946, 12.9716, 77.5946); got != 0 {
			t.Errorf("distance = %v, want 0", got)
		}
	})

	t.Run("symmetric", func(t *testing.T) {
		d1 := Haversine(48.8566, 2.3522, 51.5074, -0.1278)
		d2 := Haversine(51.5074, -0.1278, 48.8566, 2.3522)
		if d1 != d2 {
			t.Errorf("distance not symmetric: %v != %v", d1, d2)
		}
	})

	t.Run("known distance Paris to London", func(t *testing.T) {
		got := Haversine(48.8566, 2.3522, 51.5074, -0.1278)
		if got < 330 || got > 355 {
			t.Errorf("distance = %v km, want ~343", got)
		}
	})

	t.Run("short hop stays small", func(t *testing.T) {
		// Two points roughly 1.1km apart.
		got := Haversine(12.9716, 77.5946, 12.9816, 77.5946)
		if got < 1.0 || got > 1.2 {
			t.Errorf("distance = %v km, want ~1.11", got)
		}
	})

	t.Run("antipodal points do not produce NaN", func(t *testing.T) {
		got := Haversine(90, 0, -90, 0)
		if math.IsNaN(got) {
			t.Fatal("distance is NaN")
		}
		// Half the Earth's circumference.
		if got < 20000 || got > 20050 {
			t.Errorf("distance = %v km, want ~20015", got)
		}
	})
}
