package keysource

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/ssm"
	"github.com/aws/aws-sdk-go/service/ssm/ssmiface"
	"github.com/openweb3/go-sdk-common/privatekeyhelper"
	"github.com/stretchr/testify/require"

	"github.com/wangdayong228/lw3punks-client/internal/config"
	"github.com/wangdayong228/lw3punks-client/internal/utils/cryptoutil"
)

const testMnemonic = "test test test test test test test test test test test junk"

func TestFromConfig_Exclusive(t *testing.T) {
	_, err := FromConfig(config.KeyConfig{PrivateKey: "0x01", Mnemonic: testMnemonic})
	require.Error(t, err)

	src, err := FromConfig(config.KeyConfig{})
	require.NoError(t, err)
	require.Nil(t, src)

	src, err = FromConfig(config.KeyConfig{Mnemonic: testMnemonic, MnemonicIndex: 2})
	require.NoError(t, err)
	require.Equal(t, "mnemonic[2]", src.Describe())
}

func TestMnemonicSource_MatchesPrivateKeyHelper(t *testing.T) {
	got, err := MnemonicSource{Mnemonic: testMnemonic, Index: 1}.Load(context.Background())
	require.NoError(t, err)

	want, err := privatekeyhelper.NewFromMnemonic(testMnemonic, 1, nil)
	require.NoError(t, err)
	require.Equal(t, cryptoutil.EcdsaPrivToWeb3Hex(want), cryptoutil.EcdsaPrivToWeb3Hex(got))
}

func TestMnemonicSource_Invalid(t *testing.T) {
	_, err := MnemonicSource{Mnemonic: "not a real mnemonic"}.Load(context.Background())
	require.ErrorContains(t, err, "mnemonic")
}

type fakeSSM struct {
	ssmiface.SSMAPI
	value string
	err   error
	input *ssm.GetParameterInput
}

func (f *fakeSSM) GetParameterWithContext(ctx aws.Context, in *ssm.GetParameterInput, opts ...request.Option) (*ssm.GetParameterOutput, error) {
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return &ssm.GetParameterOutput{Parameter: &ssm.Parameter{Value: aws.String(f.value)}}, nil
}

func TestSSMSource_Load(t *testing.T) {
	want, err := privatekeyhelper.NewFromMnemonic(testMnemonic, 0, nil)
	require.NoError(t, err)

	fake := &fakeSSM{value: cryptoutil.EcdsaPrivToWeb3Hex(want)}
	got, err := SSMSource{Client: fake, Param: "/lw3punks/deployer"}.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, cryptoutil.AddressOf(want), cryptoutil.AddressOf(got))
	require.Equal(t, "/lw3punks/deployer", aws.StringValue(fake.input.Name))
	require.True(t, aws.BoolValue(fake.input.WithDecryption))
}

func TestSSMSource_Error(t *testing.T) {
	fake := &fakeSSM{err: errors.New("AccessDenied")}
	_, err := SSMSource{Client: fake, Param: "/x"}.Load(context.Background())
	require.ErrorContains(t, err, fmt.Sprintf("读取 SSM 参数 %s 失败", "/x"))
}
