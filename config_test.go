package redpipe

import (
	"os"
	"path/filepath"
	"time"

	"github.com/aphistic/sweet"
	. "github.com/onsi/gomega"

	"github.com/efritz/redpipe/resp"
)

type ConfigSuite struct{}

const testConfig = `
addr: localhost:6380
password: secret
database: 2
poolCapacity: 4
maxDepth: 8
connectTimeout: 1s
callTimeout: 250ms
borrowTimeout: 2s
`

func (s *ConfigSuite) TestDefaults(t sweet.T) {
	config := newConfig(nil)
	Expect(config.password).To(BeEmpty())
	Expect(config.database).To(Equal(0))
	Expect(config.connectTimeout).To(Equal(time.Second * 5))
	Expect(config.callTimeout).To(Equal(time.Duration(0)))
	Expect(config.maxDepth).To(Equal(resp.DefaultMaxDepth))
	Expect(config.poolCapacity).To(Equal(10))
	Expect(config.borrowTimeout).To(BeNil())
}

func (s *ConfigSuite) TestParseConfig(t sweet.T) {
	fileConfig, err := ParseConfig([]byte(testConfig))
	Expect(err).To(BeNil())
	Expect(fileConfig.Addr).To(Equal("localhost:6380"))

	configs, err := fileConfig.ConfigFuncs()
	Expect(err).To(BeNil())

	config := newConfig(configs)
	Expect(config.password).To(Equal("secret"))
	Expect(config.database).To(Equal(2))
	Expect(config.poolCapacity).To(Equal(4))
	Expect(config.maxDepth).To(Equal(8))
	Expect(config.connectTimeout).To(Equal(time.Second))
	Expect(config.callTimeout).To(Equal(time.Millisecond * 250))
	Expect(config.writeTimeout).To(Equal(time.Second * 5))
	Expect(config.borrowTimeout).NotTo(BeNil())
	Expect(*config.borrowTimeout).To(Equal(time.Second * 2))
}

func (s *ConfigSuite) TestParseConfigInvalidDuration(t sweet.T) {
	fileConfig, err := ParseConfig([]byte("callTimeout: soon\n"))
	Expect(err).To(BeNil())

	_, err = fileConfig.ConfigFuncs()
	Expect(err).To(MatchError(ContainSubstring("invalid callTimeout")))
}

func (s *ConfigSuite) TestParseConfigInvalidYAML(t sweet.T) {
	_, err := ParseConfig([]byte("poolCapacity: [1, 2"))
	Expect(err).To(MatchError(ContainSubstring("invalid config")))
}

func (s *ConfigSuite) TestLoadConfig(t sweet.T) {
	dir, err := os.MkdirTemp("", "redpipe")
	Expect(err).To(BeNil())
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "redpipe.yaml")
	Expect(os.WriteFile(path, []byte(testConfig), 0644)).To(BeNil())

	fileConfig, err := LoadConfig(path)
	Expect(err).To(BeNil())
	Expect(fileConfig.Database).To(Equal(2))

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	Expect(err).NotTo(BeNil())
}
