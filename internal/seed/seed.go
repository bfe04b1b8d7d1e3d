package seed

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/anshumat-labs/payroll-manager/backend/internal/domain"
	"github.com/anshumat-labs/payroll-manager/backend/internal/repository"
	"github.com/anshumat-labs/payroll-manager/backend/internal/utils"
)

// SeedPayrollData 从 HR 导出的 CSV 中导入员工及其历史工资条。
// 表头中形如 2025-01 的列是月份列，列值为该月的工资金额，其余为员工信息列。
func SeedPayrollData(r *repository.Repository) {
	file, err := os.Open("./internal/seed/data/payroll.csv")
	if err != nil {
		slog.Error("打开文件失败", "error", err)
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)

	// 读取表头
	headers, err := reader.Read()
	if err != nil {
		slog.Error("读取表头失败", "error", err)
		return
	}

	monthHeaderArray := []string{}
	infoHeaderArray := []string{}
	for _, header := range headers {
		if strings.Contains(header, "-") {
			// 表示这列是某个月份
			monthHeaderArray = append(monthHeaderArray, header)
		} else {
			// 表示这个是信息列
			infoHeaderArray = append(infoHeaderArray, header)
		}
	}

	if len(monthHeaderArray) == 0 || len(infoHeaderArray) == 0 {
		slog.Error("没有找到月份列或信息列")
		return
	}
	for _, header := range monthHeaderArray {
		if err := utils.ValidateMonth(header); err != nil {
			slog.Error("月份列格式错误", "header", header)
			return
		}
	}

	// 读取数据
	var records []map[string]string
	for {
		row, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			slog.Error("读取文件失败", "error", err)
			return
		}

		record := make(map[string]string)
		for i, value := range row {
			record[headers[i]] = value
		}
		records = append(records, record)
	}

	// 插入员工及其工资条到数据库中
	for _, record := range records {
		// 先尝试获取员工
		email := record["邮箱"]
		if email == "" {
			slog.Error("没有找到邮箱", "record", record)
			continue
		}

		user, err := r.GetUserByEmail(email)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				// 表示该员工不在数据库中，需要新建并插入
				user = &domain.User{
					Email:        email,
					PasswordHash: "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy", // 初始密码 password，首次登录后需修改
					FullName:     record["姓名"],
					Role:         domain.RoleEmployee,
				}
				if role := record["角色"]; role != "" {
					user.Role = domain.Role(role)
				}

				if err := r.CreateUser(user); err != nil {
					slog.Error("插入员工失败", "error", err)
					continue
				}
			default:
				slog.Error("获取员工失败", "error", err)
				continue
			}
		}

		// 插入各月份的工资条
		for _, monthHeader := range monthHeaderArray {
			value := record[monthHeader]
			if value == "" {
				// 该月没有工资记录
				continue
			}

			amount, err := strconv.ParseFloat(value, 64)
			if err != nil {
				slog.Error("转换工资金额失败", "value", value)
				continue
			}

			slip := &domain.SalarySlip{
				UserID: user.ID,
				Month:  monthHeader,
				Amount: amount,
			}

			if err := r.CreateSalarySlip(slip); err != nil {
				slog.Error("插入工资条失败", "error", err)
				continue
			}
		}
	}

	slog.Info("插入数据完成")
}
