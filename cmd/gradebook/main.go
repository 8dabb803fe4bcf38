// Command gradebook 演示基于二叉搜索树的成绩册.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
