package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/anshumat-labs/payroll-manager/backend/internal/domain"
	"github.com/mozillazg/go-pinyin"
	"golang.org/x/crypto/bcrypt"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "霞", "飞", "玲", "超",
	"华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌", "欣",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var digits = "0123456789"

func GenerateEmailFromChineseName(chineseName string, emailDomainName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	localPart := ""

	for _, py := range pinyinArray {
		localPart += py
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		localPart += string(digits[rand.Intn(len(digits))])
	}

	return localPart + "@" + emailDomainName
}

func GenerateRandomEmployee(password string, emailDomainName string) (*domain.User, error) {
	fullName := GenerateRandomChineseName()
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        GenerateEmailFromChineseName(fullName, emailDomainName),
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Role:         domain.RoleEmployee,
	}

	return user, nil
}

// 生成最近 24 个月内的随机月份
func GenerateRandomMonth() string {
	month := time.Now().AddDate(0, -rand.Intn(24), 0)
	return month.Format("2006-01")
}

func GenerateRandomSalarySlip(userID int64) *domain.SalarySlip {
	return &domain.SalarySlip{
		UserID: userID,
		Month:  GenerateRandomMonth(),
		Amount: float64(rand.Intn(20000)+5000) + float64(rand.Intn(100))/100,
		Notes:  fmt.Sprintf("基本工资与绩效，编号 %06d", rand.Intn(1000000)),
	}
}

var expenseDescriptions = []string{
	"差旅交通费", "团队聚餐费", "办公用品采购", "客户招待费", "培训报名费", "打车费",
}

func GenerateRandomExpense(userID int64) *domain.Expense {
	return &domain.Expense{
		UserID:      userID,
		Amount:      float64(rand.Intn(2000)+50) + float64(rand.Intn(100))/100,
		Description: expenseDescriptions[rand.Intn(len(expenseDescriptions))],
		Month:       GenerateRandomMonth(),
	}
}
