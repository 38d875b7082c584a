// Package zhlive provides the interaction layer of a live English to Chinese
// translator.
//
// A Coordinator reacts to user events (keystrokes, variant toggles, speak,
// copy and share requests) and drives a translation backend reached over
// HTTP. Everything the coordinator touches is a capability interface, so the
// same logic runs behind an HTML page, a terminal or a test fake.
//
// Basic usage:
//
//	import (
//	    "fmt"
//
//	    "github.com/ZaguanLabs/zhlive"
//	    "github.com/ZaguanLabs/zhlive/backend"
//	    "github.com/ZaguanLabs/zhlive/view"
//	)
//
//	func main() {
//	    client := backend.New(backend.Config{BaseURL: "http://localhost:5000"})
//	    page, _ := view.NewPage()
//
//	    c := zhlive.NewCoordinator(client, page)
//	    defer c.Close()
//
//	    c.Input("hello")
//	    c.Input("hello world") // only this one is sent, 300ms later
//	    c.Flush()
//	    c.Wait()
//
//	    fmt.Println(c.Shown().Translation) // 你好世界
//	}
package zhlive
