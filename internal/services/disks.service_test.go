package services

import (
	"errors"
	"reflect"
	"testing"

	"zhuangtai/internal/models"
)

const gib = uint64(1) << 30

// testReporter returns a reporter whose mount points always "exist",
// so filtering decisions come only from the config table.
func testReporter() *DiskReporter {
	r := NewDiskReporter(DefaultFilterConfig())
	r.pathExists = func(string) bool { return true }
	return r
}

func usageTable(table map[string]models.DiskUsage) UsageFunc {
	return func(mountpoint string) (*models.DiskUsage, error) {
		u, ok := table[mountpoint]
		if !ok {
			return nil, errors.New("usage lookup failed")
		}
		return &u, nil
	}
}

func mount(device, mountpoint, fstype string) models.DiskMount {
	return models.DiskMount{Device: device, Mountpoint: mountpoint, Fstype: fstype}
}

func TestSelectEmptyInput(t *testing.T) {
	got := testReporter().SelectReportableDisks(nil, usageTable(nil))
	if got == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(got) != 0 {
		t.Fatalf("expected no disks, got %d", len(got))
	}
}

func TestSizeThreshold(t *testing.T) {
	mounts := []models.DiskMount{
		mount("/dev/sda1", "/small", "ext4"),
		mount("/dev/sda2", "/big", "ext4"),
	}
	usage := usageTable(map[string]models.DiskUsage{
		"/small": {TotalBytes: gib / 2, UsedBytes: 100},
		"/big":   {TotalBytes: 2 * gib, UsedBytes: gib},
	})

	got := testReporter().SelectReportableDisks(mounts, usage)
	if len(got) != 1 {
		t.Fatalf("expected 1 disk, got %d", len(got))
	}
	if got[0].Mountpoint != "/big" {
		t.Errorf("expected /big, got %s", got[0].Mountpoint)
	}
}

func TestShorterPathWins(t *testing.T) {
	mounts := []models.DiskMount{
		mount("/dev/sda1", "/mnt/data/bind", "ext4"),
		mount("/dev/sda1", "/data", "ext4"),
	}
	shared := models.DiskUsage{TotalBytes: 100 * gib, UsedBytes: 50 * gib, FreeBytes: 50 * gib, UsedPercent: 50}
	usage := usageTable(map[string]models.DiskUsage{
		"/mnt/data/bind": shared,
		"/data":          shared,
	})

	got := testReporter().SelectReportableDisks(mounts, usage)
	if len(got) != 1 {
		t.Fatalf("expected 1 disk after dedup, got %d", len(got))
	}
	if got[0].Mountpoint != "/data" {
		t.Errorf("expected shorter path /data to win, got %s", got[0].Mountpoint)
	}
}

func TestLongerPathDiscarded(t *testing.T) {
	mounts := []models.DiskMount{
		mount("/dev/sda1", "/data", "ext4"),
		mount("/dev/sda1", "/mnt/data/bind", "ext4"),
	}
	shared := models.DiskUsage{TotalBytes: 100 * gib, UsedBytes: 50 * gib}
	usage := usageTable(map[string]models.DiskUsage{
		"/data":          shared,
		"/mnt/data/bind": shared,
	})

	got := testReporter().SelectReportableDisks(mounts, usage)
	if len(got) != 1 || got[0].Mountpoint != "/data" {
		t.Fatalf("expected only /data, got %v", got)
	}
}

func TestDedupInvariant(t *testing.T) {
	mounts := []models.DiskMount{
		mount("/dev/sda1", "/", "ext4"),
		mount("/dev/sda1", "/rootbind", "ext4"),
		mount("/dev/sdb1", "/srv", "xfs"),
		mount("/dev/sdc1", "/home", "ext4"),
	}
	rootUsage := models.DiskUsage{TotalBytes: 40 * gib, UsedBytes: 10 * gib}
	usage := usageTable(map[string]models.DiskUsage{
		"/":         rootUsage,
		"/rootbind": rootUsage,
		"/srv":      {TotalBytes: 40 * gib, UsedBytes: 20 * gib},
		"/home":     {TotalBytes: 200 * gib, UsedBytes: 20 * gib},
	})

	got := testReporter().SelectReportableDisks(mounts, usage)
	seen := make(map[[2]uint64]bool)
	for _, d := range got {
		key := [2]uint64{d.Usage.TotalBytes, d.Usage.UsedBytes}
		if seen[key] {
			t.Fatalf("duplicate (total, used) pair %v in output", key)
		}
		seen[key] = true
	}
	if len(got) != 3 {
		t.Errorf("expected 3 disks, got %d", len(got))
	}
}

func TestPrefixExclusion(t *testing.T) {
	mounts := []models.DiskMount{
		mount("/dev/sdb1", "/proc/mounted-extra", "ext4"),
	}
	usage := usageTable(map[string]models.DiskUsage{
		"/proc/mounted-extra": {TotalBytes: 5 * gib, UsedBytes: gib},
	})

	got := testReporter().SelectReportableDisks(mounts, usage)
	if len(got) != 0 {
		t.Fatalf("mount under /proc/ must be excluded regardless of size, got %v", got)
	}
}

func TestVirtualDeviceAndFstypeExclusion(t *testing.T) {
	mounts := []models.DiskMount{
		mount("/dev/loop3", "/snap/core", "ext4"),
		mount("/dev/sda1", "/tmpmount", "tmpfs"),
		mount("/dev/sr0", "/media/cdrom", "iso9660"),
		mount("/dev/sda2", "/squash", "squashfs"),
	}
	usage := usageTable(map[string]models.DiskUsage{
		"/snap/core":   {TotalBytes: 5 * gib, UsedBytes: gib},
		"/tmpmount":    {TotalBytes: 5 * gib, UsedBytes: gib},
		"/media/cdrom": {TotalBytes: 5 * gib, UsedBytes: gib},
		"/squash":      {TotalBytes: 5 * gib, UsedBytes: gib},
	})

	got := testReporter().SelectReportableDisks(mounts, usage)
	if len(got) != 0 {
		t.Fatalf("virtual devices and pseudo filesystems must be excluded, got %v", got)
	}
}

func TestMissingMountpointExcluded(t *testing.T) {
	r := NewDiskReporter(DefaultFilterConfig())
	r.pathExists = func(path string) bool { return path != "/gone" }

	mounts := []models.DiskMount{
		mount("/dev/sda1", "/gone", "ext4"),
		mount("/dev/sda2", "/here", "ext4"),
	}
	usage := usageTable(map[string]models.DiskUsage{
		"/gone": {TotalBytes: 5 * gib, UsedBytes: gib},
		"/here": {TotalBytes: 5 * gib, UsedBytes: 2 * gib},
	})

	got := r.SelectReportableDisks(mounts, usage)
	if len(got) != 1 || got[0].Mountpoint != "/here" {
		t.Fatalf("expected only /here, got %v", got)
	}
}

func TestUsageFailureDropped(t *testing.T) {
	mounts := []models.DiskMount{
		mount("/dev/sda1", "/", "ext4"),
		mount("/dev/sdb1", "/denied", "ext4"),
		mount("/dev/sdc1", "/home", "ext4"),
	}
	// "/denied" is absent from the table, so the lookup fails
	usage := usageTable(map[string]models.DiskUsage{
		"/":     {TotalBytes: 40 * gib, UsedBytes: 10 * gib},
		"/home": {TotalBytes: 200 * gib, UsedBytes: 20 * gib},
	})

	got := testReporter().SelectReportableDisks(mounts, usage)
	if len(got) != 2 {
		t.Fatalf("expected 2 disks, got %d", len(got))
	}
	for _, d := range got {
		if d.Mountpoint == "/denied" {
			t.Error("mount with failed usage lookup must be dropped")
		}
	}
}

func TestSortOrder(t *testing.T) {
	mounts := []models.DiskMount{
		mount("/dev/sda1", "/var", "ext4"),
		mount("/dev/sdb1", "/", "ext4"),
		mount("/dev/sdc1", "/home", "ext4"),
	}
	usage := usageTable(map[string]models.DiskUsage{
		"/var":  {TotalBytes: 10 * gib, UsedBytes: gib},
		"/":     {TotalBytes: 40 * gib, UsedBytes: 2 * gib},
		"/home": {TotalBytes: 200 * gib, UsedBytes: 3 * gib},
	})

	got := testReporter().SelectReportableDisks(mounts, usage)
	want := []string{"/", "/home", "/var"}
	var points []string
	for _, d := range got {
		points = append(points, d.Mountpoint)
	}
	if !reflect.DeepEqual(points, want) {
		t.Errorf("expected order %v, got %v", want, points)
	}
}

func TestSelectIsIdempotent(t *testing.T) {
	mounts := []models.DiskMount{
		mount("/dev/sda1", "/var", "ext4"),
		mount("/dev/sda1", "/mnt/var/bind", "ext4"),
		mount("/dev/sdb1", "/", "ext4"),
	}
	varUsage := models.DiskUsage{TotalBytes: 10 * gib, UsedBytes: gib}
	usage := usageTable(map[string]models.DiskUsage{
		"/var":          varUsage,
		"/mnt/var/bind": varUsage,
		"/":             {TotalBytes: 40 * gib, UsedBytes: 2 * gib},
	})

	r := testReporter()
	first := r.SelectReportableDisks(mounts, usage)
	second := r.SelectReportableDisks(mounts, usage)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("two runs over identical input differ: %v vs %v", first, second)
	}
}

func TestFilterConfigOverride(t *testing.T) {
	cfg := DefaultFilterConfig()
	cfg.ExcludedPathPrefixes = append(cfg.ExcludedPathPrefixes, "/backup/")
	r := NewDiskReporter(cfg)
	r.pathExists = func(string) bool { return true }

	mounts := []models.DiskMount{
		mount("/dev/sda1", "/backup/daily", "ext4"),
	}
	usage := usageTable(map[string]models.DiskUsage{
		"/backup/daily": {TotalBytes: 5 * gib, UsedBytes: gib},
	})

	if got := r.SelectReportableDisks(mounts, usage); len(got) != 0 {
		t.Fatalf("custom prefix must exclude the mount, got %v", got)
	}
}
