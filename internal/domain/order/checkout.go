package order

import (
	"regexp"
	"strings"
)

// DefaultCountry 收货地址默认国家代码
const DefaultCountry = "BD"

// emailPattern 邮箱格式校验(宽松匹配,严格校验交给邮件服务)
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// CustomerInfo 结算时的买家信息
type CustomerInfo struct {
	FirstName string
	LastName  string
	Address1  string
	Address2  string
	City      string
	State     string
	Postcode  string
	Country   string
	Email     string
	Phone     string
}

// Validate 校验买家信息(业务规则)
// 校验顺序固定,返回第一个不满足的错误:先检查必填项,再检查邮箱格式
func (c *CustomerInfo) Validate() error {
	if strings.TrimSpace(c.FirstName) == "" {
		return ErrMissingFirstName
	}
	if strings.TrimSpace(c.LastName) == "" {
		return ErrMissingLastName
	}
	if strings.TrimSpace(c.Email) == "" {
		return ErrMissingEmail
	}
	if strings.TrimSpace(c.Phone) == "" {
		return ErrMissingPhone
	}
	if strings.TrimSpace(c.Address1) == "" {
		return ErrMissingAddress
	}
	if strings.TrimSpace(c.City) == "" {
		return ErrMissingCity
	}
	if strings.TrimSpace(c.State) == "" {
		return ErrMissingState
	}
	if strings.TrimSpace(c.Postcode) == "" {
		return ErrMissingPostcode
	}
	if !emailPattern.MatchString(strings.TrimSpace(c.Email)) {
		return ErrInvalidEmail
	}
	return nil
}

// ToAddress 转换为订单地址
// 国家为空时使用默认国家
func (c *CustomerInfo) ToAddress() Address {
	country := c.Country
	if country == "" {
		country = DefaultCountry
	}
	return Address{
		FirstName: strings.TrimSpace(c.FirstName),
		LastName:  strings.TrimSpace(c.LastName),
		Address1:  strings.TrimSpace(c.Address1),
		Address2:  strings.TrimSpace(c.Address2),
		City:      strings.TrimSpace(c.City),
		State:     strings.TrimSpace(c.State),
		Postcode:  strings.TrimSpace(c.Postcode),
		Country:   country,
		Email:     strings.TrimSpace(c.Email),
		Phone:     strings.TrimSpace(c.Phone),
	}
}
