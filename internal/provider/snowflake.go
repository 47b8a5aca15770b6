package provider

import (
	"math/rand"

	"github.com/bwmarrin/snowflake"
)

// NewSnowflakeNode 创建雪花ID生成节点，用于生成交易流水号
func NewSnowflakeNode() *snowflake.Node {
	node, err := snowflake.NewNode(rand.Int63n(1024))
	if err != nil {
		panic(err)
	}

	return node
}
