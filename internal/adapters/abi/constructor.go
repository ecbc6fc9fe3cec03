package abi

import (
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	gethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/zkbugbounty/bountydeploy/internal/domain"
)

// DeployData returns the creation bytecode of the factory followed by the
// ABI-encoded constructor arguments
func DeployData(factory *domain.ContractFactory, args []string) ([]byte, error) {
	inputs := factory.ConstructorInputs()
	if len(args) != len(inputs) {
		return nil, fmt.Errorf("%w: constructor of %s takes %d arguments, got %d",
			domain.ErrInvalidArgument, factory.Name, len(inputs), len(args))
	}

	values := make([]interface{}, len(inputs))
	for i, input := range inputs {
		value, err := ConvertArg(input.Type, args[i])
		if err != nil {
			name := input.Name
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}
			return nil, fmt.Errorf("%w: %s (%s): %v", domain.ErrInvalidArgument, name, input.Type.String(), err)
		}
		values[i] = value
	}

	packed, err := factory.ABI.Pack("", values...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode constructor arguments: %w", err)
	}

	data := make([]byte, 0, len(factory.Bytecode)+len(packed))
	data = append(data, factory.Bytecode...)
	return append(data, packed...), nil
}

// ConvertArg converts a textual argument into the Go value the ABI packer
// expects for t
func ConvertArg(t gethabi.Type, raw string) (interface{}, error) {
	raw = strings.TrimSpace(raw)

	switch t.T {
	case gethabi.AddressTy:
		if !common.IsHexAddress(raw) {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidAddress, raw)
		}
		return common.HexToAddress(raw), nil

	case gethabi.BoolTy:
		return strconv.ParseBool(raw)

	case gethabi.StringTy:
		return raw, nil

	case gethabi.UintTy, gethabi.IntTy:
		return convertInt(t, raw)

	case gethabi.BytesTy:
		return hexutil.Decode(raw)

	case gethabi.FixedBytesTy:
		b, err := hexutil.Decode(raw)
		if err != nil {
			return nil, err
		}
		if len(b) != t.Size {
			return nil, fmt.Errorf("expected %d bytes, got %d", t.Size, len(b))
		}
		value := reflect.New(t.GetType()).Elem()
		reflect.Copy(value, reflect.ValueOf(b))
		return value.Interface(), nil

	default:
		return nil, fmt.Errorf("unsupported type %s", t.String())
	}
}

func convertInt(t gethabi.Type, raw string) (interface{}, error) {
	n, ok := new(big.Int).SetString(raw, 0)
	if !ok {
		return nil, fmt.Errorf("not an integer: %q", raw)
	}
	unsigned := t.T == gethabi.UintTy
	if unsigned && n.Sign() < 0 {
		return nil, fmt.Errorf("negative value for unsigned type")
	}

	bits := t.Size
	if unsigned {
		if n.BitLen() > bits {
			return nil, fmt.Errorf("value overflows %s", t.String())
		}
	} else {
		limit := new(big.Int).Lsh(big.NewInt(1), uint(bits-1))
		if n.Cmp(limit) >= 0 || n.Cmp(new(big.Int).Neg(limit)) < 0 {
			return nil, fmt.Errorf("value overflows %s", t.String())
		}
	}

	switch {
	case unsigned && bits == 8:
		return uint8(n.Uint64()), nil
	case unsigned && bits == 16:
		return uint16(n.Uint64()), nil
	case unsigned && bits == 32:
		return uint32(n.Uint64()), nil
	case unsigned && bits == 64:
		return n.Uint64(), nil
	case !unsigned && bits == 8:
		return int8(n.Int64()), nil
	case !unsigned && bits == 16:
		return int16(n.Int64()), nil
	case !unsigned && bits == 32:
		return int32(n.Int64()), nil
	case !unsigned && bits == 64:
		return n.Int64(), nil
	default:
		return n, nil
	}
}
