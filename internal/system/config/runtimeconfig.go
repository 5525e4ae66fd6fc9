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

import "sync"

// ESSRuntime holds the runtime configuration for the email signature service.
type ESSRuntime struct {
	ESSHome string `yaml:"ess_home"`
	Config  Config `yaml:"config"`
}

var (
	runtimeConfig *ESSRuntime
	once          sync.Once
)

// InitializeESSRuntime initializes the ESSRuntime configuration.
func InitializeESSRuntime(essHome string, config *Config) error {

	once.Do(func() {
		runtimeConfig = &ESSRuntime{
			ESSHome: essHome,
			Config:  *config,
		}
	})

	return nil
}

// GetESSRuntime returns the ESSRuntime configuration.
func GetESSRuntime() *ESSRuntime {

	if runtimeConfig == nil {
		panic("ESSRuntime is not initialized")
	}
	return runtimeConfig
}
