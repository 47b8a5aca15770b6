package strutil

import (
	"crypto/rand"
	"math/big"
)

const packetIdCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewPacketId 生成红包唯一ID（大写字母+数字）
// 全局唯一性由调用方结合存储层唯一索引做碰撞检查
func NewPacketId() string {
	return "RP" + Random(14)
}

// Random 生成指定长度的随机大写字母数字串
func Random(length int) string {
	max := big.NewInt(int64(len(packetIdCharset)))

	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand 不可用属于环境级故障
			panic(err)
		}

		b[i] = packetIdCharset[n.Int64()]
	}

	return string(b)
}
