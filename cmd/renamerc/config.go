// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"strings"

	"github.com/spf13/viper"
	"github.com/walteh/renamerc/cmd/renamerc/opts"
	"gitlab.com/tozd/go/errors"
)

const (
	configBaseName   = ".renamerc"
	configFolderPath = "."
	envPrefix        = "RENAMERC"

	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

// newConfig layers flag defaults under .renamerc.yaml and RENAMERC_*
// variables. A missing config file is not an error.
func newConfig() (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigName(configBaseName)
	v.SetConfigType("yaml")
	v.AddConfigPath(configFolderPath)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault(opts.JobsKey, 0)
	v.SetDefault(opts.ExtKey, []string{})
	v.SetDefault(opts.ExcludeKey, []string{})

	v.SetDefault(opts.LogMaxSizeKey, defaultLogMaxSize)
	v.SetDefault(opts.LogMaxBackupsKey, defaultLogMaxBackups)
	v.SetDefault(opts.LogMaxAgeKey, defaultLogMaxAge)
	v.SetDefault(opts.LogCompressKey, defaultLogCompress)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, errors.Errorf("reading %s.yaml: %w", configBaseName, err)
	}

	return v, nil
}
