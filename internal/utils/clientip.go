package utils

import (
	"net"
	"strings"
)

// ClientIP — реальный адрес клиента: первый публичный из X-Forwarded-For,
// иначе RemoteAddr. Loopback/приватные адреса считаем "нет пригодного IP"
// и возвращаем пустую строку.
func ClientIP(xForwardedFor, remoteAddr string) string {
	if xForwardedFor != "" {
		for _, part := range strings.Split(xForwardedFor, ",") {
			ip := strings.TrimSpace(part)
			if isUsableIP(ip) {
				return ip
			}
		}
		return ""
	}

	host := remoteAddr
	if h, _, err := net.SplitHostPort(remoteAddr); err == nil {
		host = h
	}
	if isUsableIP(host) {
		return host
	}
	return ""
}

func isUsableIP(s string) bool {
	ip := net.ParseIP(s)
	if ip == nil {
		return false
	}
	if ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() || ip.IsLinkLocalUnicast() {
		return false
	}
	return true
}
