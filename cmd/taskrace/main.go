// taskrace 命令行入口
//
// 子命令：
//   - whatsmyip: 并发询问多个公网IP端点，取第一个合法的IP
//   - replay:    录制时钟快照并用测试时钟确定性回放
//   - sessions:  列出已保存的录制会话
//   - version:   版本信息
package main

func main() {
	Execute()
}
