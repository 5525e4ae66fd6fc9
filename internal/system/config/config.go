/*
 * Copyright (c) 2026, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package config

type AddrConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

type LogConfig struct {
	LogLevel string `yaml:"log_level"`
}

type AuthConfig struct {
	Enabled            bool     `yaml:"enabled"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
}

type AuthServerConfig struct {
	IntrospectionEndPoint string              `yaml:"introspectionEndpoint"`
	TokenEndpoint         string              `yaml:"tokenEndpoint"`
	ClientID              string              `yaml:"client_id"`
	ClientSecret          string              `yaml:"client_secret"`
	AdminUsername         string              `yaml:"admin_username"`
	AdminPassword         string              `yaml:"admin_password"`
	RequiredScopes        map[string][]string `yaml:"required_scopes"`
}

type DataSourceConfig struct {
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type DocumentStoreConfig struct {
	URI        string `yaml:"uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

// DirectoryConfig points at the cloud identity directory the audits read from.
type DirectoryConfig struct {
	BaseURL        string `yaml:"base_url"`
	TokenEndpoint  string `yaml:"tokenEndpoint"`
	ClientID       string `yaml:"client_id"`
	ClientSecret   string `yaml:"client_secret"`
	Scope          string `yaml:"scope"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// MailboxConfig points at the mailbox signature gateway.
type MailboxConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type AuditConfig struct {
	ScheduleEnabled         bool `yaml:"schedule_enabled"`
	ScheduleIntervalMinutes int  `yaml:"schedule_interval_minutes"`
	UserCacheTTLSeconds     int  `yaml:"user_cache_ttl_seconds"`
	HistoryLimit            int  `yaml:"history_limit"`
}

type Config struct {
	Addr          AddrConfig          `yaml:"addr"`
	Log           LogConfig           `yaml:"log"`
	Auth          AuthConfig          `yaml:"auth"`
	AuthServer    AuthServerConfig    `yaml:"auth_server"`
	DataSource    DataSourceConfig    `yaml:"datasource"`
	DocumentStore DocumentStoreConfig `yaml:"document_store"`
	Directory     DirectoryConfig     `yaml:"directory"`
	Mailbox       MailboxConfig       `yaml:"mailbox"`
	Audit         AuditConfig         `yaml:"audit"`
}
