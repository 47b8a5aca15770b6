package service

import (
	"crypto/rand"
	"math/big"

	"github.com/zhangdayeb/go-redpacket/internal/entity"
)

// AmountSplitter 红包金额拆分器
//
// 纯算法组件：把总金额按份数一次性拆成有序份额列表，金额全部使用
// 最小货币单位（分）的整数运算。产出列表满足三个不变量：
//   - 长度等于份数
//   - 各份额之和恰好等于总金额
//   - 每个份额不小于最小单位
//
// 列表顺序即领取顺序，是否在入队前打乱由调用方决定。
type AmountSplitter struct{}

func NewAmountSplitter() *AmountSplitter {
	return &AmountSplitter{}
}

// Generate 按指定模式拆分金额
func (s *AmountSplitter) Generate(total int64, count int, mode string, minUnit int64) ([]int64, error) {
	if minUnit <= 0 {
		minUnit = 1
	}

	if count < 1 || total < int64(count)*minUnit {
		return nil, entity.ErrInvalidAllocation
	}

	switch mode {
	case entity.RedPacketTypeAverage:
		return s.generateAverage(total, count), nil
	default:
		// 拼手气红包；custom 模式未提供金额时也回落到随机拆分
		return s.generateRandom(total, count, minUnit)
	}
}

// GenerateCustom 使用调用方指定的金额列表
func (s *AmountSplitter) GenerateCustom(total int64, amounts []int64, minUnit int64) ([]int64, error) {
	if minUnit <= 0 {
		minUnit = 1
	}

	if len(amounts) == 0 {
		return nil, entity.ErrInvalidAllocation
	}

	var sum int64
	for _, amount := range amounts {
		if amount < minUnit {
			return nil, entity.ErrInvalidAllocation
		}
		sum += amount
	}

	if sum != total {
		return nil, entity.ErrInvalidAllocation
	}

	shares := make([]int64, len(amounts))
	copy(shares, amounts)

	return shares, nil
}

// generateAverage 平均拆分，末位份额吸收整除余数
func (s *AmountSplitter) generateAverage(total int64, count int) []int64 {
	per := total / int64(count)

	shares := make([]int64, count)
	for i := 0; i < count-1; i++ {
		shares[i] = per
	}
	shares[count-1] = total - per*int64(count-1)

	return shares
}

// generateRandom 拼手气拆分
// 前 count-1 份在 [minUnit, 剩余预算-(后续份数*minUnit)] 内均匀抽取，
// 保证后续每份仍能满足最小单位，末位份额吸收全部剩余
func (s *AmountSplitter) generateRandom(total int64, count int, minUnit int64) ([]int64, error) {
	shares := make([]int64, count)
	remaining := total

	for i := 0; i < count-1; i++ {
		sharesLeft := int64(count - i)
		max := remaining - (sharesLeft-1)*minUnit

		amount, err := randomInRange(minUnit, max)
		if err != nil {
			return nil, err
		}

		shares[i] = amount
		remaining -= amount
	}

	shares[count-1] = remaining

	return shares, nil
}

// Shuffle 打乱份额顺序（隐藏抽取顺序的策略选项）
func (s *AmountSplitter) Shuffle(shares []int64) error {
	for i := len(shares) - 1; i > 0; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return err
		}

		j := n.Int64()
		shares[i], shares[j] = shares[j], shares[i]
	}

	return nil
}

// randomInRange 使用 crypto/rand 在 [min, max] 内均匀抽取
func randomInRange(min, max int64) (int64, error) {
	if max <= min {
		return min, nil
	}

	n, err := rand.Int(rand.Reader, big.NewInt(max-min+1))
	if err != nil {
		return 0, err
	}

	return min + n.Int64(), nil
}
