package service

import (
	"errors"
	"testing"

	"github.com/zhangdayeb/go-redpacket/internal/entity"
)

func TestAmountSplitter_GenerateAverage(t *testing.T) {
	splitter := NewAmountSplitter()

	tests := []struct {
		name  string
		total int64
		count int
		want  []int64
	}{
		{name: "10.00 split 3", total: 1000, count: 3, want: []int64{333, 333, 334}},
		{name: "exact division", total: 900, count: 3, want: []int64{300, 300, 300}},
		{name: "single share", total: 500, count: 1, want: []int64{500}},
		{name: "remainder to last", total: 1001, count: 4, want: []int64{250, 250, 250, 251}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := splitter.Generate(tt.total, tt.count, entity.RedPacketTypeAverage, 1)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			if len(shares) != len(tt.want) {
				t.Fatalf("Generate() len = %d, want %d", len(shares), len(tt.want))
			}
			for i, share := range shares {
				if share != tt.want[i] {
					t.Errorf("Generate()[%d] = %d, want %d", i, share, tt.want[i])
				}
			}
		})
	}
}

func TestAmountSplitter_GenerateRandom(t *testing.T) {
	splitter := NewAmountSplitter()

	tests := []struct {
		name    string
		total   int64
		count   int
		minUnit int64
	}{
		{name: "100.00 split 10", total: 10000, count: 10, minUnit: 1},
		{name: "tight budget", total: 10, count: 10, minUnit: 1},
		{name: "min unit 10", total: 1000, count: 7, minUnit: 10},
		{name: "single share", total: 123, count: 1, minUnit: 1},
		{name: "two shares", total: 2, count: 2, minUnit: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// 随机拆分多跑几轮，覆盖不同的抽取序列
			for round := 0; round < 50; round++ {
				shares, err := splitter.Generate(tt.total, tt.count, entity.RedPacketTypeRandom, tt.minUnit)
				if err != nil {
					t.Fatalf("Generate() error = %v", err)
				}
				if len(shares) != tt.count {
					t.Fatalf("Generate() len = %d, want %d", len(shares), tt.count)
				}

				var sum int64
				for i, share := range shares {
					if share < tt.minUnit {
						t.Errorf("Generate()[%d] = %d, below min unit %d", i, share, tt.minUnit)
					}
					sum += share
				}

				if sum != tt.total {
					t.Errorf("Generate() sum = %d, want %d", sum, tt.total)
				}
			}
		})
	}
}

func TestAmountSplitter_InvalidAllocation(t *testing.T) {
	splitter := NewAmountSplitter()

	tests := []struct {
		name    string
		total   int64
		count   int
		minUnit int64
		wantErr bool
	}{
		{name: "0.05 split 10", total: 5, count: 10, minUnit: 1, wantErr: true},
		{name: "5.00 split 10 fits", total: 500, count: 10, minUnit: 1, wantErr: false},
		{name: "zero count", total: 100, count: 0, minUnit: 1, wantErr: true},
		{name: "negative count", total: 100, count: -1, minUnit: 1, wantErr: true},
		{name: "exact fit", total: 10, count: 10, minUnit: 1, wantErr: false},
		{name: "below min unit", total: 99, count: 10, minUnit: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := splitter.Generate(tt.total, tt.count, entity.RedPacketTypeRandom, tt.minUnit)
			if tt.wantErr {
				if !errors.Is(err, entity.ErrInvalidAllocation) {
					t.Errorf("Generate() error = %v, want ErrInvalidAllocation", err)
				}
			} else if err != nil {
				t.Errorf("Generate() error = %v, want nil", err)
			}
		})
	}
}

func TestAmountSplitter_GenerateCustom(t *testing.T) {
	splitter := NewAmountSplitter()

	t.Run("valid amounts", func(t *testing.T) {
		shares, err := splitter.GenerateCustom(1000, []int64{100, 200, 700}, 1)
		if err != nil {
			t.Fatalf("GenerateCustom() error = %v", err)
		}
		if len(shares) != 3 || shares[0] != 100 || shares[1] != 200 || shares[2] != 700 {
			t.Errorf("GenerateCustom() = %v, want [100 200 700]", shares)
		}
	})

	t.Run("sum mismatch", func(t *testing.T) {
		_, err := splitter.GenerateCustom(1000, []int64{100, 200}, 1)
		if !errors.Is(err, entity.ErrInvalidAllocation) {
			t.Errorf("GenerateCustom() error = %v, want ErrInvalidAllocation", err)
		}
	})

	t.Run("share below min unit", func(t *testing.T) {
		_, err := splitter.GenerateCustom(1000, []int64{5, 995}, 10)
		if !errors.Is(err, entity.ErrInvalidAllocation) {
			t.Errorf("GenerateCustom() error = %v, want ErrInvalidAllocation", err)
		}
	})

	t.Run("empty amounts", func(t *testing.T) {
		_, err := splitter.GenerateCustom(1000, nil, 1)
		if !errors.Is(err, entity.ErrInvalidAllocation) {
			t.Errorf("GenerateCustom() error = %v, want ErrInvalidAllocation", err)
		}
	})
}

func TestAmountSplitter_Shuffle(t *testing.T) {
	splitter := NewAmountSplitter()

	shares, err := splitter.Generate(10000, 20, entity.RedPacketTypeRandom, 1)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if err := splitter.Shuffle(shares); err != nil {
		t.Fatalf("Shuffle() error = %v", err)
	}

	var sum int64
	for _, share := range shares {
		if share < 1 {
			t.Errorf("Shuffle() produced share %d below min unit", share)
		}
		sum += share
	}

	if sum != 10000 {
		t.Errorf("Shuffle() sum = %d, want 10000", sum)
	}
}
