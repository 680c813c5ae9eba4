package types

// StringPtr 返回字符串指针（配置零值陷阱辅助）
func StringPtr(v string) *string { return &v }

// Int64Ptr 返回 int64 指针
func Int64Ptr(v int64) *int64 { return &v }

// IntPtr 返回 int 指针
func IntPtr(v int) *int { return &v }

// BoolPtr 返回 bool 指针
func BoolPtr(v bool) *bool { return &v }
