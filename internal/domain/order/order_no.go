package order

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// GenerateOrderNo 生成订单号
// 格式：ORD + 秒级时间戳 + 6位随机数，如ORD1699248000123456
// 唯一性由orders.order_no唯一索引兜底
func GenerateOrderNo() string {
	return fmt.Sprintf("ORD%d%06d", time.Now().Unix(), rand.IntN(1000000))
}
