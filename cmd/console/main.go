package main

import "xianyu_admin_v1_202509/internal/console"

func main() {
	console.Execute()
}
