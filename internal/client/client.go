// Package client 是控制台唯一的网络出口。
// 所有请求都经过这里：注入 Bearer token、归一化 {success,data,message,code}
// 应答、把 HTTP/业务错误码映射为用户通知，并在 401 时强制下线。
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"

	"xianyu_admin_v1_202509/internal/notify"
)

// Response 统一应答信封
type Response struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
	Code    int             `json:"code,omitempty"`
}

// Decode 把 data 解析到目标结构
func (r *Response) Decode(out interface{}) error {
	if len(r.Data) == 0 {
		return nil
	}
	return json.Unmarshal(r.Data, out)
}

// BusinessError 业务失败（success=false）
type BusinessError struct {
	Code    int
	Message string
}

func (e *BusinessError) Error() string {
	if e.Message == "" {
		return "请求失败"
	}
	return e.Message
}

// TokenStore 会话凭证的读写口，AuthStorage 满足该接口
type TokenStore interface {
	Token() string
	Clear()
}

// Client 请求层
type Client struct {
	http     *resty.Client
	auth     TokenStore
	notifier notify.Notifier

	// onForcedLogout 401 强制下线回调（跳回登录页的等价物）
	onForcedLogout func()
	// loggingOut 防止并发 401 触发通知风暴，登录成功后复位
	loggingOut atomic.Bool
}

// Option 客户端可选配置
type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.SetTimeout(d) }
}

func WithForcedLogout(fn func()) Option {
	return func(c *Client) { c.onForcedLogout = fn }
}

// New 创建请求层。baseURL 指向后端 API 服务
func New(baseURL string, auth TokenStore, notifier notify.Notifier, opts ...Option) *Client {
	if notifier == nil {
		notifier = notify.LogNotifier{}
	}

	c := &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(10 * time.Second).
			SetHeader("Content-Type", "application/json"),
		auth:     auth,
		notifier: notifier,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ResetLogoutGuard 登录成功后复位 401 防抖
func (c *Client) ResetLogoutGuard() {
	c.loggingOut.Store(false)
}

// ==================== 请求方法 ====================

// Get 发起 GET 请求，query 可为 nil
func (c *Client) Get(ctx context.Context, path string, query map[string]string) (*Response, error) {
	req := c.newRequest(ctx)
	if query != nil {
		req.SetQueryParams(query)
	}
	resp, err := req.Get(path)
	return c.handle(resp, err)
}

// Post 发起 POST 请求，body 可为 nil
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	req := c.newRequest(ctx)
	if body != nil {
		req.SetBody(body)
	}
	resp, err := req.Post(path)
	return c.handle(resp, err)
}

// Put 发起 PUT 请求
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	req := c.newRequest(ctx)
	if body != nil {
		req.SetBody(body)
	}
	resp, err := req.Put(path)
	return c.handle(resp, err)
}

// Del 发起 DELETE 请求
func (c *Client) Del(ctx context.Context, path string) (*Response, error) {
	resp, err := c.newRequest(ctx).Delete(path)
	return c.handle(resp, err)
}

func (c *Client) newRequest(ctx context.Context) *resty.Request {
	req := c.http.R().SetContext(ctx)
	if c.auth != nil {
		if token := c.auth.Token(); token != "" {
			req.SetHeader("Authorization", "Bearer "+token)
		}
	}
	return req
}

// ==================== 应答处理 ====================

// statusMessages HTTP 状态码对应的用户提示
var statusMessages = map[int]string{
	401: "登录已过期，请重新登录",
	403: "权限不足",
	404: "请求的资源不存在",
	500: "服务器内部错误",
	502: "网关错误",
	503: "服务不可用",
	504: "网关超时",
}

func (c *Client) handle(resp *resty.Response, err error) (*Response, error) {
	// 传输层失败：没有任何响应
	if err != nil {
		log.Printf("[Client] 网络请求失败: %v", err)
		c.notifier.Notify(notify.LevelError, "网络连接失败，请检查网络设置")
		return nil, fmt.Errorf("网络异常: %w", err)
	}

	// HTTP 层错误状态
	if resp.IsError() {
		status := resp.StatusCode()
		msg, mapped := statusMessages[status]
		if !mapped {
			msg = fmt.Sprintf("请求失败 (HTTP %d)", status)
		}
		log.Printf("[Client] HTTP %d: %s %s", status, resp.Request.Method, resp.Request.URL)

		if status == 401 {
			c.forceLogout(msg)
		} else {
			c.notifier.Notify(notify.LevelError, msg)
		}
		return nil, &BusinessError{Code: status, Message: msg}
	}

	var envelope Response
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		log.Printf("[Client] 应答解析失败: %v", err)
		c.notifier.Notify(notify.LevelError, "服务端应答格式异常")
		return nil, fmt.Errorf("应答解析失败: %w", err)
	}

	// 业务层失败
	if !envelope.Success {
		msg := envelope.Message
		if msg == "" {
			msg = "请求失败"
		}

		switch envelope.Code {
		case 401:
			c.forceLogout("登录已过期，请重新登录")
		case 403:
			c.notifier.Notify(notify.LevelError, "权限不足")
		default:
			c.notifier.Notify(notify.LevelError, msg)
		}
		return nil, &BusinessError{Code: envelope.Code, Message: msg}
	}

	return &envelope, nil
}

// forceLogout 401 专用：清会话并触发回调，并发 401 只执行一次
func (c *Client) forceLogout(msg string) {
	if !c.loggingOut.CompareAndSwap(false, true) {
		return
	}

	c.notifier.Notify(notify.LevelError, msg)
	if c.auth != nil {
		c.auth.Clear()
	}
	if c.onForcedLogout != nil {
		c.onForcedLogout()
	}
}
