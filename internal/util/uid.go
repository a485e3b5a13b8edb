package util

import (
	"math/rand"
	"strings"
)

const shortIDChars = "0123456789abcdefghijklmnopqrstuvwxyz"

// LocalIDLength 客户端本地 ID 的固定长度
const LocalIDLength = 7

// ShortID 生成 n 位 base36 随机 ID，与前端 uid() 的形式一致
func ShortID(n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(shortIDChars[rand.Intn(len(shortIDChars))])
	}
	return b.String()
}

// LocalID 生成一个客户端本地短 ID
func LocalID() string {
	return ShortID(LocalIDLength)
}
