package lookup

import "time"

// defaultURLs 默认查询端点
// 第一个域名不存在，用于演示失败操作不会中断竞速
var defaultURLs = []string{
	"https://api.doesnotexist.org",
	"https://api.ipify.org",
	"https://api.seeip.org",
	"http://api.ipaddress.com/myip",
}

const (
	// defaultStartDelay 请求启动前的延迟
	defaultStartDelay = 100 * time.Millisecond

	// defaultMaxBodyBytes 响应体最多读取 1KB，IP 地址远小于该值
	defaultMaxBodyBytes = 1024
)
