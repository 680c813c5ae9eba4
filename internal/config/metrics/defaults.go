package metrics

const (
	// defaultEnabled 默认不启用 HTTP 指标端点
	defaultEnabled = false

	// defaultAddr 默认只监听本机
	defaultAddr = "127.0.0.1:9464"
)
