package gpu

import "testing"

func TestInventory_AppendTo(t *testing.T) {
	inv := Inventory{
		NVMLOk: true,
		Devices: []DeviceInfo{
			{Name: "NVIDIA GeForce GTX 1650", Index: 0},
			{Name: "  ", Index: 1},
		},
	}

	tests := []struct {
		name    string
		listing string
		want    string
	}{
		{"empty listing", "", "3D controller: NVIDIA GeForce GTX 1650\n"},
		{"listing without newline", "00:02.0 Host bridge", "00:02.0 Host bridge\n3D controller: NVIDIA GeForce GTX 1650\n"},
		{"listing with newline", "00:02.0 Host bridge\n", "00:02.0 Host bridge\n3D controller: NVIDIA GeForce GTX 1650\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inv.AppendTo(tt.listing); got != tt.want {
				t.Errorf("AppendTo() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInventory_AppendTo_NoDevices(t *testing.T) {
	listing := "00:02.0 VGA compatible controller: Intel\n"
	if got := (Inventory{}).AppendTo(listing); got != listing {
		t.Errorf("AppendTo() changed listing: %q", got)
	}
}

func TestDetector_NilLogger(t *testing.T) {
	inv := NewDetector(nil).Detect()
	if inv.Devices == nil {
		t.Error("Expected non-nil device slice")
	}
}
